package metrics

import "media-gallery/internal/filesystem"

// filesystemObserver implements filesystem.Observer using the Prometheus
// metrics declared in this package.
type filesystemObserver struct{}

// NewFilesystemObserver creates an observer that records filesystem metrics
// into the Prometheus counters and histograms declared in metrics.go.
func NewFilesystemObserver() filesystem.Observer {
	return &filesystemObserver{}
}

func (o *filesystemObserver) ObserveRetryAttempt(retryOp string) {
	FilesystemRetryAttempts.WithLabelValues(retryOp).Inc()
}

func (o *filesystemObserver) ObserveRetrySuccess(retryOp string) {
	FilesystemRetrySuccess.WithLabelValues(retryOp).Inc()
}

func (o *filesystemObserver) ObserveRetryFailure(retryOp string) {
	FilesystemRetryFailures.WithLabelValues(retryOp).Inc()
}

func (o *filesystemObserver) ObserveRetryDuration(retryOp string, durationSeconds float64) {
	FilesystemRetryDuration.WithLabelValues(retryOp).Observe(durationSeconds)
}

func (o *filesystemObserver) ObserveStaleError(retryOp string) {
	FilesystemStaleErrors.WithLabelValues(retryOp).Inc()
}
