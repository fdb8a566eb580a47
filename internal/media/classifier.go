package media

import (
	"errors"
	"io"
	"path/filepath"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"
)

// ReadHeader returns up to mediatypes.HeaderSize leading bytes of path.
func ReadHeader(path string) ([]byte, error) {
	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close %s: %v", path, err)
		}
	}()

	header := make([]byte, mediatypes.HeaderSize)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return header[:n], nil
}

// Classify sniffs the content of path. Unreadable files are FileTypeOther.
func Classify(path string, c mediatypes.Classifier) mediatypes.FileType {
	header, err := ReadHeader(path)
	if err != nil {
		logging.Debug("Could not read header of %s: %v", path, err)
		return mediatypes.FileTypeOther
	}
	metrics.ClassifiedFormatsTotal.WithLabelValues(mediatypes.DetectFormat(header)).Inc()
	return c.Classify(header)
}

// Inspect applies the ignore rules to path. It returns the entry and true
// when path is a processable image or video. Name rules are checked before
// any I/O; symlinks are followed.
func Inspect(path string, c mediatypes.Classifier) (Entry, bool) {
	name := filepath.Base(path)
	if isThumbnailName(name) || isOriginalName(name) {
		return Entry{}, false
	}

	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil || !info.Mode().IsRegular() {
		return Entry{}, false
	}

	kind := Classify(path, c)
	if !kind.IsMedia() {
		return Entry{}, false
	}
	return Entry{Path: path, Kind: kind}, true
}

// IsIgnorable reports whether path is skipped by the walker and the gallery:
// thumbnails, exiftool backups, anything that is not a regular file, and
// files whose content is neither an image nor a video.
func IsIgnorable(path string, c mediatypes.Classifier) bool {
	_, ok := Inspect(path, c)
	return !ok
}
