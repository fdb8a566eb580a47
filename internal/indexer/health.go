package indexer

import (
	"time"
)

// HealthStatus contains health check information.
type HealthStatus struct {
	Ready       bool      `json:"ready"`
	Walking     bool      `json:"walking"`
	StartTime   time.Time `json:"startTime"`
	Uptime      string    `json:"uptime"`
	LastWalk    time.Time `json:"lastWalk,omitempty"`
	LastError   string    `json:"lastError,omitempty"`
	Directories int       `json:"directories"`
	Generated   int       `json:"generated"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	Pages       int       `json:"pages"`
}

// Status returns the state of the most recent walk. The walker is ready once
// a walk has finished, whether or not it succeeded.
func (w *Walker) Status() HealthStatus {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()

	status := w.status
	start := w.startTime
	if start.IsZero() {
		start = time.Now()
	}
	status.StartTime = start
	status.Uptime = time.Since(start).Round(time.Second).String()
	return status
}

func (w *Walker) setWalking(walking bool) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.Walking = walking
}

func (w *Walker) finish(result *Result, err error) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()

	w.status.Ready = true
	w.status.Walking = false
	w.status.LastWalk = time.Now()
	w.status.Directories = len(result.Directories)
	w.status.Generated = result.Generated
	w.status.Skipped = result.Skipped
	w.status.Failed = result.Failed
	w.status.Pages = result.Pages
	w.status.LastError = ""
	switch {
	case err != nil:
		w.status.LastError = err.Error()
	case result.Errors != nil:
		w.status.LastError = result.Errors.Error()
	}
}
