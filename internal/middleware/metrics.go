package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"media-gallery/internal/media"
	"media-gallery/internal/metrics"
)

// MetricsConfig holds configuration for the metrics middleware
type MetricsConfig struct {
	// SkipPaths are path prefixes that are not recorded
	SkipPaths []string
}

// DefaultMetricsConfig returns the default metrics configuration
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		SkipPaths: []string{"/metrics", "/healthz", "/livez"},
	}
}

// Metrics returns a middleware that records Prometheus request metrics
func Metrics(config MetricsConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range config.SkipPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			rec := newStatusRecorder(w)
			start := time.Now()
			next.ServeHTTP(rec, r)

			route := normalizePath(r.URL.Path)
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// normalizePath collapses gallery paths into a few labels to bound
// cardinality: /galleries/{page}, /galleries/{thumbnail}, /galleries/{file}
// and /assets/{file}.
func normalizePath(urlPath string) string {
	switch {
	case strings.HasPrefix(urlPath, "/galleries/"):
		base := urlPath[strings.LastIndex(urlPath, "/")+1:]
		switch {
		case base == "" || base == "index.html":
			return "/galleries/{page}"
		case strings.HasPrefix(base, media.ThumbnailPrefix):
			return "/galleries/{thumbnail}"
		default:
			return "/galleries/{file}"
		}
	case strings.HasPrefix(urlPath, "/assets/"):
		return "/assets/{file}"
	case urlPath == "/version":
		return urlPath
	default:
		return "other"
	}
}
