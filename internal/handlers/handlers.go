package handlers

import (
	"media-gallery/internal/indexer"
)

// StatusProvider reports the state of the gallery walk.
type StatusProvider interface {
	Status() indexer.HealthStatus
}

// Handlers serves the generated gallery tree.
type Handlers struct {
	walker    StatusProvider
	root      string
	assetsDir string
}

// New creates the preview server handlers. root is the walked directory;
// assetsDir may be empty, in which case /assets/ is not served.
func New(walker StatusProvider, root, assetsDir string) *Handlers {
	return &Handlers{
		walker:    walker,
		root:      root,
		assetsDir: assetsDir,
	}
}
