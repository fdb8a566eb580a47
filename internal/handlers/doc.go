// Package handlers implements the optional preview server.
//
// Routes:
//   - /galleries/: the walked tree, including index.html pages and thumbnails
//   - /assets/: PhotoSwipe and masonry assets, when an assets directory is set
//   - /healthz and /livez: readiness from the last walk and liveness
//   - /version: build information
//   - /metrics: Prometheus metrics
package handlers
