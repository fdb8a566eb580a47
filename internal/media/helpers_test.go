package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"media-gallery/internal/mediatypes"
)

// createTestImage writes a gradient image of the given size and format to path.
func createTestImage(t *testing.T, path string, width, height int, format string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: 128,
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg", "jpg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case "png":
		err = png.Encode(&buf, img)
	default:
		t.Fatalf("Unsupported test image format: %s", format)
	}
	if err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}

	writeFile(t, path, buf.Bytes())
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// videoMagic marks files the fake classifier reports as video.
var videoMagic = []byte("FAKEVIDEO")

// fakeClassifier treats PNG/JPEG signatures as images, videoMagic as video
// and everything else as other.
var fakeClassifier = mediatypes.ClassifierFunc(func(header []byte) mediatypes.FileType {
	switch {
	case bytes.HasPrefix(header, videoMagic):
		return mediatypes.FileTypeVideo
	case bytes.HasPrefix(header, []byte("\x89PNG")), bytes.HasPrefix(header, []byte{0xFF, 0xD8, 0xFF}):
		return mediatypes.FileTypeImage
	}
	return mediatypes.FileTypeOther
})
