package transcoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"
)

// DefaultSeek is the position of the preferred video thumbnail frame.
const DefaultSeek = "00:00:01.000"

// Transcoder runs ffmpeg and ffprobe as blocking subprocesses.
type Transcoder struct {
	FFmpegPath  string
	FFprobePath string
}

// New creates a Transcoder that resolves ffmpeg and ffprobe from PATH.
func New() *Transcoder {
	return &Transcoder{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
	}
}

func frameArgs(src, dst string, width int, seek string) []string {
	args := []string{
		"-y",
		"-i", src,
		"-vf", fmt.Sprintf("scale=%d:-2:force_original_aspect_ratio=decrease", width),
	}
	if seek != "" {
		args = append(args, "-ss", seek)
	}
	return append(args, "-vframes", "1", dst)
}

func probeArgs(path, field string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=" + field,
		"-of", "csv=s=x:p=0",
		path,
	}
}

// parseDimension reads the single integer ffprobe prints for one stream field.
func parseDimension(output []byte) (int, error) {
	s := strings.TrimSpace(string(output))
	// some containers report the field once per program
	if i := strings.IndexAny(s, "\r\n"); i != -1 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.TrimSuffix(s, "x")
	if s == "" {
		return 0, errors.New("ffprobe returned no value")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output %q: %w", s, err)
	}
	return n, nil
}

func (t *Transcoder) run(ctx context.Context, tool, bin string, args ...string) ([]byte, error) {
	logging.Debug("Running %s %s", bin, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	metrics.ExternalToolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ExternalToolErrors.WithLabelValues(tool).Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s interrupted: %w", tool, ctxErr)
		}
		return nil, fmt.Errorf("%s error: %w - %s", tool, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// ExtractFrame writes the frame at one second into src to dst, scaled to
// width with the aspect ratio preserved. Clips shorter than a second fall
// back to their first frame.
func (t *Transcoder) ExtractFrame(ctx context.Context, src, dst string, width int) error {
	_, err := t.run(ctx, "ffmpeg", t.FFmpegPath, frameArgs(src, dst, width, DefaultSeek)...)
	if err == nil {
		if ok, statErr := nonEmpty(dst); statErr == nil && ok {
			return nil
		}
		err = errors.New("ffmpeg produced no frame")
	}
	if ctx.Err() != nil {
		return err
	}

	logging.Debug("FFmpeg first attempt failed for %s: %v, retrying at first frame", src, err)

	if _, err := t.run(ctx, "ffmpeg", t.FFmpegPath, frameArgs(src, dst, width, "")...); err != nil {
		return err
	}
	ok, err := nonEmpty(dst)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ffmpeg produced no output for %s", src)
	}
	return nil
}

func nonEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() > 0, nil
}

// ProbeDimension returns one integer field ("width" or "height") of the
// first video stream of path.
func (t *Transcoder) ProbeDimension(ctx context.Context, path, field string) (int, error) {
	out, err := t.run(ctx, "ffprobe", t.FFprobePath, probeArgs(path, field)...)
	if err != nil {
		return 0, err
	}
	n, err := parseDimension(out)
	if err != nil {
		return 0, fmt.Errorf("probe %s of %s: %w", field, path, err)
	}
	return n, nil
}
