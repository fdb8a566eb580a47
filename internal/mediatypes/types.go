package mediatypes

import (
	"github.com/h2non/filetype"
)

// FileType represents the kind of a media file as determined by its content.
type FileType string

const (
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeOther represents an unknown, corrupt or unsupported file.
	FileTypeOther FileType = "other"
)

// HeaderSize is the number of leading bytes needed to recognize every
// supported signature.
const HeaderSize = 262

// IsMedia reports whether the type is processable.
func (t FileType) IsMedia() bool {
	return t == FileTypeImage || t == FileTypeVideo
}

// Classifier decides the kind of a file from its leading bytes.
type Classifier interface {
	Classify(header []byte) FileType
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(header []byte) FileType

// Classify calls f(header).
func (f ClassifierFunc) Classify(header []byte) FileType {
	return f(header)
}

// ContentClassifier classifies files by magic-byte signatures.
type ContentClassifier struct{}

// Classify returns FileTypeImage or FileTypeVideo when the header matches a
// known signature and FileTypeOther for anything else, including empty input.
func (ContentClassifier) Classify(header []byte) FileType {
	if len(header) == 0 {
		return FileTypeOther
	}
	if filetype.IsImage(header) {
		return FileTypeImage
	}
	if filetype.IsVideo(header) {
		return FileTypeVideo
	}
	return FileTypeOther
}

// DetectFormat names the container format of a header for logs and metric
// labels. It returns "unknown" when no signature matches.
func DetectFormat(header []byte) string {
	switch {
	case len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF:
		return "jpeg"

	case len(header) >= 8 && header[0] == 0x89 && header[1] == 0x50 && header[2] == 0x4E && header[3] == 0x47:
		return "png"

	case len(header) >= 4 && header[0] == 0x47 && header[1] == 0x49 && header[2] == 0x46 && header[3] == 0x38:
		return "gif"

	case len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "WEBP":
		return "webp"

	case len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "AVI ":
		return "avi"

	case len(header) >= 2 && header[0] == 0x42 && header[1] == 0x4D:
		return "bmp"

	case len(header) >= 4 && ((header[0] == 0x49 && header[1] == 0x49 && header[2] == 0x2A && header[3] == 0x00) ||
		(header[0] == 0x4D && header[1] == 0x4D && header[2] == 0x00 && header[3] == 0x2A)):
		return "tiff"

	case len(header) >= 12 && string(header[4:8]) == "ftyp":
		switch string(header[8:12]) {
		case "heic", "heix", "hevc", "hevx", "mif1", "msf1":
			return "heif"
		case "avif", "avis":
			return "avif"
		case "qt  ":
			return "quicktime"
		}
		return "mp4-container"

	case len(header) >= 4 && header[0] == 0x1A && header[1] == 0x45 && header[2] == 0xDF && header[3] == 0xA3:
		return "matroska"

	case len(header) >= 2 && header[0] == 0xFF && header[1] == 0x0A:
		return "jxl"

	case len(header) >= 12 && header[0] == 0x00 && header[1] == 0x00 && header[2] == 0x00 && header[3] == 0x0C &&
		string(header[4:8]) == "JXL ":
		return "jxl"
	}

	return "unknown"
}
