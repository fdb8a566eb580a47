package media

import (
	"media-gallery/internal/mediatypes"
)

// Entry is a processable media file and the kind its content sniffed as.
type Entry struct {
	Path string
	Kind mediatypes.FileType
}

// Outcome describes what Ensure did for an entry.
type Outcome string

const (
	// OutcomeGenerated means a new thumbnail was written.
	OutcomeGenerated Outcome = "generated"
	// OutcomeSkipped means the thumbnail already existed.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeUnsupported means the entry kind has no thumbnail strategy.
	OutcomeUnsupported Outcome = "unsupported"
)

// Dimensions holds the intrinsic pixel size of an image or video stream.
type Dimensions struct {
	Width  int
	Height int
}
