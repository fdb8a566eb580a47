package transcoder

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	trans := New()
	if trans == nil {
		t.Fatal("New() returned nil")
	}
	if trans.FFmpegPath != "ffmpeg" || trans.FFprobePath != "ffprobe" {
		t.Errorf("unexpected tool paths %q, %q", trans.FFmpegPath, trans.FFprobePath)
	}
}

func TestFrameArgs(t *testing.T) {
	got := frameArgs("in.mov", "thumbnail_in.jpg", 210, DefaultSeek)
	want := []string{
		"-y", "-i", "in.mov",
		"-vf", "scale=210:-2:force_original_aspect_ratio=decrease",
		"-ss", "00:00:01.000",
		"-vframes", "1",
		"thumbnail_in.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("frameArgs() = %v, want %v", got, want)
	}

	first := frameArgs("in.mov", "out.jpg", 320, "")
	for _, a := range first {
		if a == "-ss" {
			t.Error("first frame args should not seek")
		}
	}
	if first[4] != "scale=320:-2:force_original_aspect_ratio=decrease" {
		t.Errorf("scale filter = %q", first[4])
	}
}

func TestProbeArgs(t *testing.T) {
	got := probeArgs("clip.mp4", "height")
	want := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=height",
		"-of", "csv=s=x:p=0",
		"clip.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("probeArgs() = %v, want %v", got, want)
	}
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    int
		wantErr bool
	}{
		{"plain", "1920\n", 1920, false},
		{"surrounding space", "  720 \r\n", 720, false},
		{"trailing separator", "1080x\n", 1080, false},
		{"repeated per program", "640\n640\n", 640, false},
		{"empty", "", 0, true},
		{"not a number", "N/A\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDimension([]byte(tt.output))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDimension(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDimension(%q) = %d, want %d", tt.output, got, tt.want)
			}
		})
	}
}

// writeTool creates an executable shell script standing in for ffmpeg or ffprobe.
func writeTool(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("Failed to write fake %s: %v", name, err)
	}
	return path
}

func TestProbeDimension(t *testing.T) {
	trans := &Transcoder{FFprobePath: writeTool(t, "ffprobe", `
case "$6" in
  stream=width) echo 1280 ;;
  stream=height) echo 720 ;;
esac`)}

	w, err := trans.ProbeDimension(context.Background(), "clip.mp4", "width")
	if err != nil || w != 1280 {
		t.Errorf("width = %d, %v; want 1280", w, err)
	}
	h, err := trans.ProbeDimension(context.Background(), "clip.mp4", "height")
	if err != nil || h != 720 {
		t.Errorf("height = %d, %v; want 720", h, err)
	}
}

func TestProbeDimensionToolFailure(t *testing.T) {
	trans := &Transcoder{FFprobePath: writeTool(t, "ffprobe", `echo "clip.mp4: Invalid data found" >&2; exit 1`)}

	_, err := trans.ProbeDimension(context.Background(), "clip.mp4", "width")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("error %q should include stderr", err)
	}
}

func TestProbeDimensionMissingTool(t *testing.T) {
	trans := &Transcoder{FFprobePath: filepath.Join(t.TempDir(), "no-such-ffprobe")}
	if _, err := trans.ProbeDimension(context.Background(), "clip.mp4", "width"); err == nil {
		t.Error("expected error for missing tool")
	}
}

// seekAware writes a frame only when -ss is absent, like ffmpeg on a clip
// shorter than the seek position.
const seekAware = `
seek=""
for a in "$@"; do
  last="$a"
  [ "$a" = "-ss" ] && seek=1
done
[ -n "$seek" ] && exit 0
printf frame > "$last"`

func TestExtractFrame(t *testing.T) {
	trans := &Transcoder{FFmpegPath: writeTool(t, "ffmpeg", `for a in "$@"; do last="$a"; done; printf frame > "$last"`)}
	dst := filepath.Join(t.TempDir(), "thumbnail_clip.jpg")

	if err := trans.ExtractFrame(context.Background(), "clip.mov", dst, 210); err != nil {
		t.Fatalf("ExtractFrame() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "frame" {
		t.Errorf("frame = %q, %v", data, err)
	}
}

func TestExtractFrameFallsBackToFirstFrame(t *testing.T) {
	trans := &Transcoder{FFmpegPath: writeTool(t, "ffmpeg", seekAware)}
	dst := filepath.Join(t.TempDir(), "thumbnail_short.jpg")

	if err := trans.ExtractFrame(context.Background(), "short.mp4", dst, 210); err != nil {
		t.Fatalf("ExtractFrame() error = %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("fallback frame missing: %v", err)
	}
}

func TestExtractFrameFailure(t *testing.T) {
	trans := &Transcoder{FFmpegPath: writeTool(t, "ffmpeg", `echo "moov atom not found" >&2; exit 1`)}
	dst := filepath.Join(t.TempDir(), "thumbnail_broken.jpg")

	err := trans.ExtractFrame(context.Background(), "broken.mp4", dst, 210)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "moov atom not found") {
		t.Errorf("error %q should include stderr", err)
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Error("no thumbnail should be left behind")
	}
}

func TestExtractFrameContextCancellation(t *testing.T) {
	trans := &Transcoder{FFmpegPath: writeTool(t, "ffmpeg", `sleep 5`)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := trans.ExtractFrame(ctx, "clip.mov", filepath.Join(t.TempDir(), "out.jpg"), 210); err == nil {
		t.Error("expected error for cancelled context")
	}
}
