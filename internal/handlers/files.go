package handlers

import (
	"net/http"
	"path"
	"strings"

	"media-gallery/internal/media"
)

// GalleryFiles serves the walked tree under /galleries/. Metadata backups
// left by exiftool still carry the stripped EXIF block and are never served.
func (h *Handlers) GalleryFiles() http.Handler {
	files := http.StripPrefix("/galleries/", http.FileServer(http.Dir(h.root)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(path.Base(r.URL.Path), media.OriginalSuffix) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// AssetFiles serves the gallery page assets under /assets/.
func (h *Handlers) AssetFiles() http.Handler {
	return http.StripPrefix("/assets/", http.FileServer(http.Dir(h.assetsDir)))
}
