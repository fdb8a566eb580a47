package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"WalkRunsTotal", WalkRunsTotal},
		{"WalkEntriesTotal", WalkEntriesTotal},
		{"ThumbnailGenerationsTotal", ThumbnailGenerationsTotal},
		{"ThumbnailGenerationDuration", ThumbnailGenerationDuration},
		{"ThumbnailCacheHits", ThumbnailCacheHits},
		{"ThumbnailCacheMisses", ThumbnailCacheMisses},
		{"MetadataStripTotal", MetadataStripTotal},
		{"ExifGPSStrippedTotal", ExifGPSStrippedTotal},
		{"ExternalToolDuration", ExternalToolDuration},
		{"GalleryPagesTotal", GalleryPagesTotal},
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"FilesystemRetryAttempts", FilesystemRetryAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	before := testutil.ToFloat64(FilesystemRetryAttempts.WithLabelValues("stat"))
	obs.ObserveRetryAttempt("stat")
	obs.ObserveRetryAttempt("stat")
	if got := testutil.ToFloat64(FilesystemRetryAttempts.WithLabelValues("stat")) - before; got != 2 {
		t.Errorf("retry attempts delta = %v, want 2", got)
	}

	before = testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("open"))
	obs.ObserveStaleError("open")
	if got := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("open")) - before; got != 1 {
		t.Errorf("stale errors delta = %v, want 1", got)
	}

	// must not panic
	obs.ObserveRetrySuccess("stat")
	obs.ObserveRetryFailure("stat")
	obs.ObserveRetryDuration("stat", 0.01)
}

func TestInitializeMetrics(t *testing.T) {
	InitializeMetrics()

	if n := testutil.CollectAndCount(ThumbnailGenerationsTotal); n < 8 {
		t.Errorf("ThumbnailGenerationsTotal has %d series after init, want at least 8", n)
	}
	if n := testutil.CollectAndCount(WalkEntriesTotal); n < 3 {
		t.Errorf("WalkEntriesTotal has %d series after init, want at least 3", n)
	}
}

func TestWriteTextfile(t *testing.T) {
	SetAppInfo("test", "abc123", "go1.25")
	WalkRunsTotal.Inc()

	path := filepath.Join(t.TempDir(), "media_gallery.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, name := range []string{"media_gallery_walk_runs_total", `media_gallery_app_info{commit="abc123"`} {
		if !strings.Contains(content, name) {
			t.Errorf("textfile missing %q", name)
		}
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "metrics.prom")
	if err := WriteTextfile(path); err == nil {
		t.Error("WriteTextfile() into a missing directory should fail")
	}
}

func TestHandler(t *testing.T) {
	WalkRunsTotal.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "media_gallery_walk_runs_total") {
		t.Error("metrics output missing media_gallery_walk_runs_total")
	}
}
