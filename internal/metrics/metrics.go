package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Walk metrics
var (
	WalkRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_walk_runs_total",
			Help: "Total number of directory walks",
		},
	)

	WalkLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_walk_last_run_timestamp",
			Help: "Unix timestamp of the last completed walk",
		},
	)

	WalkLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_walk_last_run_duration_seconds",
			Help: "Duration of the last walk in seconds",
		},
	)

	WalkEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_walk_entries_total",
			Help: "Filesystem entries visited by the walker, by outcome",
		},
		[]string{"result"}, // "processed", "ignored", "failed"
	)

	WalkGalleryDirectories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_walk_gallery_directories",
			Help: "Number of gallery directories collected by the last walk",
		},
	)

	ClassifiedFormatsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_classified_formats_total",
			Help: "Processable files by detected container format",
		},
		[]string{"format"},
	)
)

// Thumbnail metrics
var (
	ThumbnailGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_thumbnail_generations_total",
			Help: "Total number of thumbnail generations",
		},
		[]string{"type", "status"},
	)

	ThumbnailGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_thumbnail_generation_duration_seconds",
			Help:    "Thumbnail generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"type"},
	)

	ThumbnailCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_thumbnail_cache_hits_total",
			Help: "Thumbnails that already existed and were not regenerated",
		},
	)

	ThumbnailCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_thumbnail_cache_misses_total",
			Help: "Thumbnails that had to be generated",
		},
	)
)

// Metadata metrics
var (
	MetadataStripTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_metadata_strip_total",
			Help: "EXIF strip operations by status",
		},
		[]string{"status"},
	)

	ExifGPSStrippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_exif_gps_stripped_total",
			Help: "Images whose EXIF carried GPS coordinates before stripping",
		},
	)
)

// External tool metrics
var (
	ExternalToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_external_tool_duration_seconds",
			Help:    "Duration of external tool invocations in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"tool"},
	)

	ExternalToolErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_external_tool_errors_total",
			Help: "Failed external tool invocations",
		},
		[]string{"tool"},
	)
)

// Gallery page metrics
var (
	GalleryPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_pages_total",
			Help: "index.html generations by status",
		},
		[]string{"status"},
	)

	GalleryItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_items_total",
			Help: "Gallery items rendered by media type",
		},
		[]string{"type"},
	)
)

// HTTP metrics for the preview server
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_attempts_total",
			Help: "Retry attempts after NFS stale file handle errors",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_success_total",
			Help: "Operations that succeeded after at least one retry",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_failures_total",
			Help: "Operations that failed after exhausting retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_stale_errors_total",
			Help: "ESTALE errors observed",
		},
		[]string{"operation"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_filesystem_retry_duration_seconds",
			Help:    "Total duration of filesystem operations including retries",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"operation"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_gallery_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

// Handler returns the HTTP handler exposing every registered metric.
func Handler() http.Handler {
	return promhttp.Handler()
}

// WriteTextfile writes all registered metrics to path in the text exposition
// format, for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
