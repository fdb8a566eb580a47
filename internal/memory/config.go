package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"media-gallery/internal/logging"
)

// DefaultMemoryRatio is the share of the container limit given to the Go
// heap. The rest stays available to libvips, ffmpeg and exiftool.
const DefaultMemoryRatio = 0.80

// Source values reported in ConfigResult.
const (
	SourceGOMEMLIMIT  = "GOMEMLIMIT"
	SourceMemoryLimit = "MEMORY_LIMIT"
	SourceNone        = "none"
)

// Options are the --memory-limit and --memory-ratio settings.
type Options struct {
	// ContainerLimit is the container memory limit in bytes, 0 if unknown.
	ContainerLimit int64
	// Ratio of ContainerLimit to use as GOMEMLIMIT. Values outside (0, 1]
	// select DefaultMemoryRatio.
	Ratio float64
}

// ConfigResult holds the result of memory configuration
type ConfigResult struct {
	Configured     bool
	Source         string
	ContainerLimit int64
	GoMemLimit     int64
	Ratio          float64
}

// Configure sets the runtime soft memory limit. An explicit GOMEMLIMIT in the
// environment always wins and is only reported. Call this early in main,
// before images are decoded.
func Configure(opts Options) ConfigResult {
	if env := os.Getenv("GOMEMLIMIT"); env != "" {
		result := ConfigResult{Source: SourceGOMEMLIMIT}
		if limit := debug.SetMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
			result.Configured = true
			result.GoMemLimit = limit
		}
		logging.Info("GOMEMLIMIT set via environment: %s", env)
		return result
	}

	if opts.ContainerLimit <= 0 {
		logging.Debug("MEMORY_LIMIT not set, GOMEMLIMIT will not be configured automatically")
		return ConfigResult{Source: SourceNone}
	}

	ratio := opts.Ratio
	if ratio <= 0 || ratio > 1.0 {
		if ratio != 0 {
			logging.Warn("MEMORY_RATIO %.2f out of range (0.0-1.0), using default %.2f", ratio, DefaultMemoryRatio)
		}
		ratio = DefaultMemoryRatio
	}

	goMemLimit := int64(float64(opts.ContainerLimit) * ratio)
	debug.SetMemoryLimit(goMemLimit)

	logging.Info("Configured GOMEMLIMIT: %s (%.1f%% of %s container limit)",
		FormatBytes(goMemLimit),
		ratio*100,
		FormatBytes(opts.ContainerLimit),
	)

	return ConfigResult{
		Configured:     true,
		Source:         SourceMemoryLimit,
		ContainerLimit: opts.ContainerLimit,
		GoMemLimit:     goMemLimit,
		Ratio:          ratio,
	}
}

// FormatBytes formats bytes into a human-readable IEC string.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
