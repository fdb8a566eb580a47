package media

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"
	"media-gallery/internal/mediatypes"

	"github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
)

// MetadataStripper removes EXIF data from a file in place.
type MetadataStripper interface {
	StripEXIF(ctx context.Context, path string) error
}

// ExiftoolStripper clears the EXIF group through a single stay-open exiftool
// process. The process is started on first use and must be released with
// Close. Edited files keep an exiftool "_original" backup next to them.
type ExiftoolStripper struct {
	// Binary is the exiftool executable. Empty means "exiftool" from PATH.
	Binary string

	mu sync.Mutex
	et *exiftool.Exiftool
}

// exiftool answers a write that found nothing to delete with
// "0 image files updated / 1 image files unchanged", which go-exiftool
// reports as an error.
const unchangedReply = "image files unchanged"

// failedReply is part of the summary exiftool prints when a file could not
// be written.
const failedReply = "weren't updated due to errors"

// isUnchanged reports whether err is exiftool's "nothing to strip" reply.
func isUnchanged(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, unchangedReply) && !strings.Contains(msg, failedReply)
}

func (s *ExiftoolStripper) options() []func(*exiftool.Exiftool) error {
	opts := []func(*exiftool.Exiftool) error{exiftool.BackupOriginal()}
	if s.Binary != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(s.Binary))
	}
	return opts
}

// NewExiftoolStripper returns a stripper whose exiftool process has not been
// started yet.
func NewExiftoolStripper() *ExiftoolStripper {
	return &ExiftoolStripper{}
}

// StripEXIF implements MetadataStripper.
func (s *ExiftoolStripper) StripEXIF(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.et == nil {
		et, err := exiftool.NewExiftool(s.options()...)
		if err != nil {
			metrics.ExternalToolErrors.WithLabelValues("exiftool").Inc()
			return fmt.Errorf("failed to start exiftool: %w", err)
		}
		s.et = et
		logging.Debug("Exiftool: stay-open process started")
	}

	start := time.Now()
	fms := []exiftool.FileMetadata{{
		File:   path,
		Fields: map[string]interface{}{"EXIF": nil},
	}}
	s.et.WriteMetadata(fms)
	metrics.ExternalToolDuration.WithLabelValues("exiftool").Observe(time.Since(start).Seconds())

	if err := fms[0].Err; err != nil {
		if isUnchanged(err) {
			logging.Debug("Exiftool: no EXIF data in %s", path)
			return nil
		}
		metrics.ExternalToolErrors.WithLabelValues("exiftool").Inc()
		return fmt.Errorf("exiftool failed on %s: %w", path, err)
	}
	return nil
}

// Close stops the exiftool process if it was started.
func (s *ExiftoolStripper) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.et == nil {
		return nil
	}
	err := s.et.Close()
	s.et = nil
	if err != nil {
		return fmt.Errorf("failed to close exiftool: %w", err)
	}
	logging.Debug("Exiftool: stay-open process stopped")
	return nil
}

// StripMetadata removes EXIF data from image entries. Videos and other kinds
// are left untouched.
func StripMetadata(ctx context.Context, entry Entry, s MetadataStripper) error {
	if entry.Kind != mediatypes.FileTypeImage {
		return nil
	}

	gps := hasGPS(entry.Path)

	logging.Debug("Stripping exif data: %s", entry.Path)
	if err := s.StripEXIF(ctx, entry.Path); err != nil {
		metrics.MetadataStripTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.MetadataStripTotal.WithLabelValues("success").Inc()

	if gps {
		logging.Debug("Removed GPS location from %s", entry.Path)
		metrics.ExifGPSStrippedTotal.Inc()
	}
	return nil
}

// hasGPS reports whether the file carries a decodable GPS position. Only
// formats goexif understands (JPEG, TIFF) can answer true.
func hasGPS(path string) bool {
	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return false
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close %s: %v", path, err)
		}
	}()

	x, err := exif.Decode(f)
	if err != nil {
		return false
	}
	if _, _, err := x.LatLong(); err != nil {
		return false
	}
	return true
}
