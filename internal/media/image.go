package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path/filepath"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP format support
)

// DefaultThumbnailSize is the bounding box edge of generated thumbnails.
const DefaultThumbnailSize = 210

// JPEGQuality is used whenever a thumbnail is encoded as JPEG.
const JPEGQuality = 85

// ImageConverter writes a thumbnail of src to dst that fits within size x size.
type ImageConverter interface {
	Thumbnail(ctx context.Context, src, dst string, size int) error
}

// ImagingConverter decodes with libvips when available and falls back to
// the imaging library. Pixels are always re-encoded, so no metadata from the
// source survives in the thumbnail.
type ImagingConverter struct {
	UseVips bool
}

// Thumbnail implements ImageConverter. Images that already fit are copied at
// their original size; the aspect ratio is always preserved.
func (c ImagingConverter) Thumbnail(ctx context.Context, src, dst string, size int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if size <= 0 {
		size = DefaultThumbnailSize
	}

	img, err := c.load(src, size)
	if err != nil {
		return err
	}

	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	format, err := imaging.FormatFromFilename(dst)
	if err != nil {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("failed to encode thumbnail %s: %w", dst, err)
	}

	return filesystem.WriteFileAtomic(dst, buf.Bytes())
}

func (c ImagingConverter) load(src string, size int) (image.Image, error) {
	if c.UseVips && IsVipsAvailable() {
		img, err := LoadImageWithVips(src, size, size)
		if err == nil {
			return img, nil
		}
		logging.Debug("Vips load failed for %s: %v, falling back to imaging", filepath.Base(src), err)
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", src, err)
	}
	return img, nil
}

// ImageDimensions returns the intrinsic pixel size of an image without
// decoding its pixels. Formats the registered decoders cannot read are
// measured through libvips when it is available.
func ImageDimensions(path string) (Dimensions, error) {
	file, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return Dimensions{}, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	config, _, err := image.DecodeConfig(file)
	if err == nil {
		return Dimensions{Width: config.Width, Height: config.Height}, nil
	}

	dims, vipsErr := vipsDimensions(path)
	if vipsErr != nil {
		return Dimensions{}, fmt.Errorf("failed to read dimensions of %s: %w", path, err)
	}
	return dims, nil
}
