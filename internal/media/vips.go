package media

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"media-gallery/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
)

var (
	vipsInitialized bool
	vipsInitMutex   sync.Mutex
	vipsAvailable   bool
)

// InitVips initializes the libvips library
// This should be called once at startup
func InitVips() error {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return nil
	}

	// Configure vips logging BEFORE Startup() to respect LOG_LEVEL
	var vipsLogLevel vips.LogLevel
	switch logging.GetLevel() {
	case logging.LevelDebug:
		vipsLogLevel = vips.LogLevelInfo
	case logging.LevelInfo:
		vipsLogLevel = vips.LogLevelWarning
	case logging.LevelWarn:
		vipsLogLevel = vips.LogLevelError
	default:
		vipsLogLevel = vips.LogLevelCritical
	}

	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		switch level {
		case vips.LogLevelError, vips.LogLevelCritical:
			logging.Error("[%s] %s", domain, msg)
		case vips.LogLevelWarning:
			logging.Warn("[%s] %s", domain, msg)
		default:
			logging.Debug("[%s] %s", domain, msg)
		}
	}, vipsLogLevel)

	// One image at a time; the walker controls parallelism
	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
		ReportLeaks:      false,
		CacheTrace:       false,
		CollectStats:     false,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized successfully (version: %s)", vips.Version)
	return nil
}

// ShutdownVips cleans up libvips resources
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
		logging.Info("libvips shutdown complete")
	}
}

// IsVipsAvailable returns whether libvips is initialized and available
func IsVipsAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}

// LoadImageWithVips loads an image with libvips, shrinking it during decode so
// that it fits within maxWidth x maxHeight. Images that already fit are not
// enlarged.
func LoadImageWithVips(path string, maxWidth, maxHeight int) (image.Image, error) {
	if !IsVipsAvailable() {
		return nil, fmt.Errorf("libvips not available")
	}

	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return nil, fmt.Errorf("vips failed to load image: %w", err)
	}
	defer ref.Close()

	origWidth, origHeight := ref.Width(), ref.Height()
	if origWidth > maxWidth || origHeight > maxHeight {
		logging.Debug("Vips loaded %s: %dx%d, shrinking to fit %dx%d",
			filepath.Base(path), origWidth, origHeight, maxWidth, maxHeight)
		if err := ref.Thumbnail(maxWidth, maxHeight, vips.InterestingNone); err != nil {
			return nil, fmt.Errorf("vips resize failed: %w", err)
		}
	}

	imgBytes, err := exportForDecode(ref)
	if err != nil {
		return nil, fmt.Errorf("vips export failed: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(imgBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode vips output: %w", err)
	}
	return img, nil
}

// exportForDecode encodes ref for decoding by the imaging library. Images
// with an alpha channel go through PNG so transparency survives; they are
// rotated here since PNG carries no EXIF orientation for the decoder.
func exportForDecode(ref *vips.ImageRef) ([]byte, error) {
	if ref.HasAlpha() {
		if err := ref.AutoRotate(); err != nil {
			return nil, err
		}
		buf, _, err := ref.ExportPng(vips.NewPngExportParams())
		return buf, err
	}

	buf, _, err := ref.ExportJpeg(&vips.JpegExportParams{
		Quality:        95,
		OptimizeCoding: true,
	})
	return buf, err
}

// vipsDimensions reads the pixel size of formats the standard decoders do not
// understand (HEIF, AVIF, JPEG XL).
func vipsDimensions(path string) (Dimensions, error) {
	if !IsVipsAvailable() {
		return Dimensions{}, fmt.Errorf("libvips not available")
	}

	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return Dimensions{}, fmt.Errorf("vips failed to load image: %w", err)
	}
	defer ref.Close()

	return Dimensions{Width: ref.Width(), Height: ref.Height()}, nil
}
