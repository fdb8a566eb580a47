package media

import (
	"context"
	"fmt"
	"time"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"
	"media-gallery/internal/mediatypes"
)

// VideoConverter captures a single frame of src into dst, scaled to width.
type VideoConverter interface {
	ExtractFrame(ctx context.Context, src, dst string, width int) error
}

// ThumbnailGenerator writes the sibling thumbnail of an entry unless it is
// already present. The existence of the thumbnail file is the only cache
// marker; its age and content are never compared with the source.
type ThumbnailGenerator struct {
	Images ImageConverter
	Videos VideoConverter
	Size   int
}

// NewThumbnailGenerator returns a generator using the given converters.
// A non-positive size selects DefaultThumbnailSize.
func NewThumbnailGenerator(images ImageConverter, videos VideoConverter, size int) *ThumbnailGenerator {
	if size <= 0 {
		size = DefaultThumbnailSize
	}
	logging.Debug("ThumbnailGenerator: size %dpx", size)
	return &ThumbnailGenerator{
		Images: images,
		Videos: videos,
		Size:   size,
	}
}

func (t *ThumbnailGenerator) size() int {
	if t.Size <= 0 {
		return DefaultThumbnailSize
	}
	return t.Size
}

// Ensure makes sure the thumbnail for entry exists.
func (t *ThumbnailGenerator) Ensure(ctx context.Context, entry Entry) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !entry.Kind.IsMedia() {
		logging.Warn("Unsupported file type %s for %s", entry.Kind, entry.Path)
		metrics.ThumbnailGenerationsTotal.WithLabelValues(string(entry.Kind), "unsupported").Inc()
		return OutcomeUnsupported, nil
	}

	dst := ThumbnailPath(entry.Path, entry.Kind)
	exists, err := filesystem.Exists(dst)
	if err != nil {
		return "", fmt.Errorf("failed to check thumbnail %s: %w", dst, err)
	}
	if exists {
		logging.Debug("Thumbnail cache hit: %s", dst)
		metrics.ThumbnailCacheHits.Inc()
		return OutcomeSkipped, nil
	}
	metrics.ThumbnailCacheMisses.Inc()

	logging.Info("Generating thumbnail: %s", entry.Path)
	start := time.Now()

	switch entry.Kind {
	case mediatypes.FileTypeImage:
		err = t.Images.Thumbnail(ctx, entry.Path, dst, t.size())
	case mediatypes.FileTypeVideo:
		err = t.Videos.ExtractFrame(ctx, entry.Path, dst, t.size())
	}

	metrics.ThumbnailGenerationDuration.WithLabelValues(string(entry.Kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues(string(entry.Kind), "error").Inc()
		return "", fmt.Errorf("thumbnail generation failed for %s: %w", entry.Path, err)
	}

	metrics.ThumbnailGenerationsTotal.WithLabelValues(string(entry.Kind), "success").Inc()
	logging.Debug("Thumbnail written: %s", dst)
	return OutcomeGenerated, nil
}
