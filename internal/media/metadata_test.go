package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"media-gallery/internal/mediatypes"
)

type fakeStripper struct {
	paths []string
	err   error
}

func (f *fakeStripper) StripEXIF(_ context.Context, path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

func TestStripMetadata(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.jpg")
	createTestImage(t, img, 8, 8, "jpeg")

	tests := []struct {
		name      string
		entry     Entry
		wantCalls int
	}{
		{"image is stripped", Entry{Path: img, Kind: mediatypes.FileTypeImage}, 1},
		{"video is left alone", Entry{Path: filepath.Join(dir, "b.mp4"), Kind: mediatypes.FileTypeVideo}, 0},
		{"other is left alone", Entry{Path: filepath.Join(dir, "c.txt"), Kind: mediatypes.FileTypeOther}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeStripper{}
			if err := StripMetadata(context.Background(), tt.entry, s); err != nil {
				t.Fatalf("StripMetadata() error = %v", err)
			}
			if len(s.paths) != tt.wantCalls {
				t.Errorf("stripper called %d times, want %d", len(s.paths), tt.wantCalls)
			}
		})
	}
}

func TestStripMetadataPropagatesErrors(t *testing.T) {
	img := filepath.Join(t.TempDir(), "a.png")
	createTestImage(t, img, 8, 8, "png")

	boom := errors.New("exiftool exploded")
	err := StripMetadata(context.Background(), Entry{Path: img, Kind: mediatypes.FileTypeImage}, &fakeStripper{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("StripMetadata() error = %v, want %v", err, boom)
	}
}

func TestHasGPS(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "a.png")
	createTestImage(t, png, 8, 8, "png")
	jpg := filepath.Join(dir, "b.jpg")
	createTestImage(t, jpg, 8, 8, "jpeg")

	for _, path := range []string{png, jpg, filepath.Join(dir, "missing.jpg")} {
		if hasGPS(path) {
			t.Errorf("hasGPS(%q) = true for a file without EXIF", filepath.Base(path))
		}
	}
}

func TestExiftoolStripperCloseWithoutStart(t *testing.T) {
	s := NewExiftoolStripper()
	if err := s.Close(); err != nil {
		t.Errorf("Close() on an unstarted stripper error = %v", err)
	}
}

// fakeExiftoolScript speaks the stay-open protocol. A file is "updated" the
// first time and backed up to <file>_original unless -overwrite_original was
// sent; once the backup exists it is "unchanged". Names containing "corrupt"
// get exiftool's error reply.
const fakeExiftoolScript = `#!/bin/sh
file=""
overwrite=""
stop=""
while IFS= read -r line; do
  case "$line" in
    -stay_open) stop=1 ;;
    -overwrite_original) overwrite=1 ;;
    -execute)
      [ -n "$stop" ] && exit 0
      case "$file" in
        *corrupt*)
          echo "Error: Not a valid JPG (looks more like a PNG) - $file"
          echo "    0 image files updated"
          echo "    1 files weren't updated due to errors" ;;
        *)
          if [ -e "${file}_original" ]; then
            echo "    0 image files updated"
            echo "    1 image files unchanged"
          else
            [ -z "$overwrite" ] && cp "$file" "${file}_original"
            echo "    1 image files updated"
          fi ;;
      esac
      echo "{ready}"
      file=""
      overwrite="" ;;
    -*) ;;
    *) file="$line" ;;
  esac
done
`

func newFakeExiftool(t *testing.T) *ExiftoolStripper {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools are not supported on windows")
	}
	bin := filepath.Join(t.TempDir(), "exiftool")
	if err := os.WriteFile(bin, []byte(fakeExiftoolScript), 0o755); err != nil {
		t.Fatalf("Failed to write fake exiftool: %v", err)
	}

	s := &ExiftoolStripper{Binary: bin}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestExiftoolStripperUpdatesAndKeepsBackup(t *testing.T) {
	s := newFakeExiftool(t)
	img := filepath.Join(t.TempDir(), "a.jpg")
	createTestImage(t, img, 8, 8, "jpeg")

	if err := s.StripEXIF(context.Background(), img); err != nil {
		t.Fatalf("StripEXIF() error = %v", err)
	}
	if _, err := os.Stat(img + OriginalSuffix); err != nil {
		t.Errorf("backup %s%s not written: %v", img, OriginalSuffix, err)
	}
}

func TestExiftoolStripperUnchangedIsSuccess(t *testing.T) {
	s := newFakeExiftool(t)
	img := filepath.Join(t.TempDir(), "a.png")
	createTestImage(t, img, 8, 8, "png")

	for run := 1; run <= 2; run++ {
		if err := s.StripEXIF(context.Background(), img); err != nil {
			t.Fatalf("run %d: StripEXIF() error = %v", run, err)
		}
	}
}

func TestExiftoolStripperReportsErrors(t *testing.T) {
	s := newFakeExiftool(t)
	img := filepath.Join(t.TempDir(), "corrupt.jpg")
	createTestImage(t, img, 8, 8, "png")

	err := s.StripEXIF(context.Background(), img)
	if err == nil {
		t.Fatal("expected error for a file exiftool cannot write")
	}
	if !strings.Contains(err.Error(), "Not a valid JPG") {
		t.Errorf("error %q should carry exiftool's message", err)
	}

	// The process stays usable after a failed file.
	good := filepath.Join(filepath.Dir(img), "good.jpg")
	createTestImage(t, good, 8, 8, "jpeg")
	if err := s.StripEXIF(context.Background(), good); err != nil {
		t.Errorf("StripEXIF() after failure error = %v", err)
	}
}

func TestExiftoolStripperMissingFile(t *testing.T) {
	s := newFakeExiftool(t)

	if err := s.StripEXIF(context.Background(), filepath.Join(t.TempDir(), "gone.jpg")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestExiftoolStripperMissingBinary(t *testing.T) {
	s := &ExiftoolStripper{Binary: filepath.Join(t.TempDir(), "no-exiftool")}

	if err := s.StripEXIF(context.Background(), "a.jpg"); err == nil {
		t.Error("expected error when exiftool cannot be started")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on a never started stripper error = %v", err)
	}
}

func TestIsUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"unchanged", "0 image files updated\n    1 image files unchanged", true},
		{"error", "Error: Not a valid JPG - x.jpg\n    0 image files updated\n    1 files weren't updated due to errors", false},
		{"mixed", "0 image files updated\n    1 image files unchanged\n    1 files weren't updated due to errors", false},
		{"other", "file does not exist", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUnchanged(errors.New(tt.reply)); got != tt.want {
				t.Errorf("isUnchanged(%q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}
