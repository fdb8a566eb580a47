package filesystem

// Observer records retry metrics. Implementations are provided by the
// metrics package to break the import cycle between filesystem and metrics.
type Observer interface {
	// retryOp is the retry operation: "stat", "open".
	ObserveRetryAttempt(retryOp string)
	ObserveRetrySuccess(retryOp string)
	ObserveRetryFailure(retryOp string)
	ObserveRetryDuration(retryOp string, durationSeconds float64)
	ObserveStaleError(retryOp string)
}

// defaultObserver is the package-level observer set at startup.
// If nil, metric recording is silently skipped (safe for tests).
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
// Call this once at startup after creating the observer implementation.
func SetObserver(o Observer) {
	defaultObserver = o
}

// observe is a nil-safe helper for the package-level observer.
func observe() Observer {
	return defaultObserver
}
