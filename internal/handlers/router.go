package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router registers the preview server routes.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)
	r.Handle("/metrics", h.MetricsHandler()).Methods(http.MethodGet)

	r.Handle("/", http.RedirectHandler("/galleries/", http.StatusFound)).Methods(http.MethodGet)
	r.PathPrefix("/galleries/").Handler(h.GalleryFiles()).Methods(http.MethodGet, http.MethodHead)
	if h.assetsDir != "" {
		r.PathPrefix("/assets/").Handler(h.AssetFiles()).Methods(http.MethodGet, http.MethodHead)
	}

	return r
}
