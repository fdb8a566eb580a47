package handlers

import (
	"net/http"

	"media-gallery/internal/metrics"
)

// MetricsHandler returns the Prometheus metrics handler
func (h *Handlers) MetricsHandler() http.Handler {
	return metrics.Handler()
}
