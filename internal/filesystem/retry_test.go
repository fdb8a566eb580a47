package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

type countingObserver struct {
	attempts, successes, failures, stale, durations int
}

func (o *countingObserver) ObserveRetryAttempt(string)           { o.attempts++ }
func (o *countingObserver) ObserveRetrySuccess(string)           { o.successes++ }
func (o *countingObserver) ObserveRetryFailure(string)           { o.failures++ }
func (o *countingObserver) ObserveRetryDuration(string, float64) { o.durations++ }
func (o *countingObserver) ObserveStaleError(string)             { o.stale++ }

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}
}

func withObserver(t *testing.T) *countingObserver {
	t.Helper()
	obs := &countingObserver{}
	SetObserver(obs)
	t.Cleanup(func() { SetObserver(nil) })
	return obs
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 50*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 50ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 500*time.Millisecond {
		t.Errorf("MaxBackoff = %v, want 500ms", config.MaxBackoff)
	}
}

func TestIsNFSStaleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "ESTALE error", err: syscall.ESTALE, want: true},
		{name: "wrapped ESTALE", err: &os.PathError{Op: "stat", Path: "/x", Err: syscall.ESTALE}, want: true},
		{name: "ENOENT error", err: syscall.ENOENT, want: false},
		{name: "generic error", err: os.ErrNotExist, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNFSStaleError(tt.err); got != tt.want {
				t.Errorf("isNFSStaleError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithRetryRecoversFromStaleHandle(t *testing.T) {
	obs := withObserver(t)

	calls := 0
	got, err := withRetry("stat", "/nfs/a.jpg", fastRetryConfig(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, syscall.ESTALE
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("withRetry() error = %v", err)
	}
	if got != 42 {
		t.Errorf("withRetry() = %d, want 42", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if obs.stale != 2 || obs.attempts != 2 || obs.successes != 1 || obs.failures != 0 {
		t.Errorf("observer = %+v, want stale=2 attempts=2 successes=1", *obs)
	}
}

func TestWithRetryGivesUp(t *testing.T) {
	obs := withObserver(t)

	calls := 0
	_, err := withRetry("open", "/nfs/a.jpg", fastRetryConfig(), func() (int, error) {
		calls++
		return 0, syscall.ESTALE
	})
	if !errors.Is(err, syscall.ESTALE) {
		t.Fatalf("withRetry() error = %v, want ESTALE", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4 (1 + 3 retries)", calls)
	}
	if obs.failures != 1 {
		t.Errorf("failures = %d, want 1", obs.failures)
	}
}

func TestWithRetryDoesNotRetryOtherErrors(t *testing.T) {
	calls := 0
	_, err := withRetry("stat", "/missing", fastRetryConfig(), func() (int, error) {
		calls++
		return 0, os.ErrNotExist
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want ErrNotExist", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestStatAndOpenWithRetry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := StatWithRetry(path, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("StatWithRetry() error = %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("Size() = %d, want 4", info.Size())
	}

	f, err := OpenWithRetry(path, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("OpenWithRetry() error = %v", err)
	}
	f.Close()

	if _, err := OpenWithRetry(filepath.Join(dir, "missing"), DefaultRetryConfig()); !os.IsNotExist(err) {
		t.Errorf("OpenWithRetry(missing) error = %v, want not-exist", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thumbnail_a.jpg")

	ok, err := Exists(path)
	if err != nil || ok {
		t.Fatalf("Exists(missing) = (%v, %v), want (false, nil)", ok, err)
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err = Exists(path)
	if err != nil || !ok {
		t.Fatalf("Exists(present) = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != NewFileMode {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), NewFileMode)
	}

	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	info, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("existing mode changed to %v", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only index.html", len(entries))
	}
}
