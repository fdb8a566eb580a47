package handlers

import (
	"encoding/json"
	"net/http"

	"media-gallery/internal/logging"
)

// writeJSON encodes v as JSON. Encoding errors are logged since the status
// line has already been sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}
