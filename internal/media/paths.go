package media

import (
	"path/filepath"
	"strings"

	"media-gallery/internal/mediatypes"
)

const (
	// ThumbnailPrefix is prepended to the source name to form its thumbnail name.
	ThumbnailPrefix = "thumbnail_"
	// OriginalSuffix marks backups written by exiftool next to the edited file.
	OriginalSuffix = "_original"
	// VideoThumbnailExt replaces a video's extension in its thumbnail name.
	VideoThumbnailExt = ".jpg"
)

// ThumbnailPath returns where the thumbnail for path lives: the same
// directory, the source name prefixed with "thumbnail_", and for videos the
// extension replaced by ".jpg". It performs no I/O.
func ThumbnailPath(path string, kind mediatypes.FileType) string {
	dir, name := filepath.Split(path)
	if kind == mediatypes.FileTypeVideo {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + VideoThumbnailExt
	}
	return filepath.Join(dir, ThumbnailPrefix+name)
}

// isThumbnailName reports whether a base name belongs to a generated thumbnail.
func isThumbnailName(name string) bool {
	return strings.HasPrefix(name, ThumbnailPrefix)
}

// isOriginalName reports whether a base name is an exiftool backup.
func isOriginalName(name string) bool {
	return strings.HasSuffix(name, OriginalSuffix)
}
