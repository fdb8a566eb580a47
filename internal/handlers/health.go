package handlers

import (
	"net/http"
	"runtime"
	"time"

	"media-gallery/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Ready     bool   `json:"ready"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Walking   bool   `json:"walking"`
	LastWalk  string `json:"lastWalk,omitempty"`
	LastError string `json:"lastError,omitempty"`

	Directories int `json:"directories"`
	Generated   int `json:"generated"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
	Pages       int `json:"pages"`

	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the state of the last walk. It answers 503 until the
// first walk has finished.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	status := h.walker.Status()

	response := HealthResponse{
		Status:       statusHealthy,
		Ready:        status.Ready,
		Version:      startup.Version,
		Uptime:       status.Uptime,
		Walking:      status.Walking,
		LastError:    status.LastError,
		Directories:  status.Directories,
		Generated:    status.Generated,
		Skipped:      status.Skipped,
		Failed:       status.Failed,
		Pages:        status.Pages,
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	if !status.LastWalk.IsZero() {
		response.LastWalk = status.LastWalk.Format(time.RFC3339)
	}

	switch {
	case !status.Ready:
		response.Status = statusStarting
	case status.LastError != "" || status.Failed > 0:
		response.Status = statusDegraded
	}

	w.Header().Set("Content-Type", "application/json")
	if status.Ready {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, response)
}

// LivenessCheck always returns 200 while the server is running
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{"status": "alive"})
	}
}
