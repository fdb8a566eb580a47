package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"media-gallery/internal/logging"
	"media-gallery/internal/media"

	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"
)

// DefaultBaseURL prefixes every generated link when no base_url is given.
const DefaultBaseURL = "./"

// ErrMissingDirectory is returned when the directory argument is absent.
var ErrMissingDirectory = errors.New("missing directory argument")

// Flag names.
const (
	FlagLogLevel        = "log-level"
	FlagThumbnailSize   = "thumbnail-size"
	FlagWorkers         = "workers"
	FlagFailFast        = "fail-fast"
	FlagProgress        = "progress"
	FlagMetricsFile     = "metrics-file"
	FlagServe           = "serve"
	FlagAssetsDir       = "assets-dir"
	FlagUseVips         = "use-vips"
	FlagMemoryLimit     = "memory-limit"
	FlagMemoryRatio     = "memory-ratio"
	FlagLogHealthChecks = "log-health-checks"
)

// Config holds all application configuration
type Config struct {
	Root    string
	BaseURL string

	LogLevel      string
	ThumbnailSize int
	Workers       int
	FailFast      bool
	Progress      bool
	UseVips       bool

	MetricsFile     string
	ServeAddr       string
	AssetsDir       string
	LogHealthChecks bool

	MemoryLimit int64
	MemoryRatio float64
}

// Flags returns the command line flags. Every flag falls back to an
// environment variable.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagLogLevel,
			Usage:   "log level: debug, info, warn, error",
			Value:   "info",
			EnvVars: []string{"LOG_LEVEL"},
		},
		&cli.IntFlag{
			Name:    FlagThumbnailSize,
			Usage:   "bounding box edge of generated thumbnails in pixels",
			Value:   media.DefaultThumbnailSize,
			EnvVars: []string{"THUMBNAIL_SIZE"},
		},
		&cli.IntFlag{
			Name:    FlagWorkers,
			Usage:   "parallel thumbnail workers (0 = one per CPU)",
			Value:   1,
			EnvVars: []string{"THUMBNAIL_WORKERS"},
		},
		&cli.BoolFlag{
			Name:    FlagFailFast,
			Usage:   "abort on the first file that cannot be processed",
			EnvVars: []string{"FAIL_FAST"},
		},
		&cli.BoolFlag{
			Name:    FlagProgress,
			Usage:   "show a progress bar when stderr is a terminal",
			EnvVars: []string{"PROGRESS"},
		},
		&cli.StringFlag{
			Name:    FlagMetricsFile,
			Usage:   "write Prometheus metrics in textfile format after the run",
			EnvVars: []string{"METRICS_FILE"},
		},
		&cli.StringFlag{
			Name:    FlagServe,
			Usage:   "serve the gallery tree on this address after generation (e.g. :8080)",
			EnvVars: []string{"SERVE_ADDR"},
		},
		&cli.StringFlag{
			Name:    FlagAssetsDir,
			Usage:   "directory served under /assets/ by the preview server",
			EnvVars: []string{"ASSETS_DIR"},
		},
		&cli.BoolFlag{
			Name:    FlagLogHealthChecks,
			Usage:   "log health check requests of the preview server",
			Value:   true,
			EnvVars: []string{"LOG_HEALTH_CHECKS"},
		},
		&cli.BoolFlag{
			Name:    FlagUseVips,
			Usage:   "shrink images while decoding with libvips",
			Value:   true,
			EnvVars: []string{"USE_VIPS"},
		},
		&cli.Int64Flag{
			Name:    FlagMemoryLimit,
			Usage:   "container memory limit in bytes used to set GOMEMLIMIT",
			EnvVars: []string{"MEMORY_LIMIT"},
		},
		&cli.Float64Flag{
			Name:    FlagMemoryRatio,
			Usage:   "share of the memory limit given to the Go heap",
			EnvVars: []string{"MEMORY_RATIO"},
		},
	}
}

// FromCLI builds the configuration from parsed flags and the positional
// arguments <directory> [base_url].
func FromCLI(c *cli.Context) (*Config, error) {
	if c.NArg() < 1 || c.Args().First() == "" {
		return nil, ErrMissingDirectory
	}

	root, err := homedir.Expand(c.Args().Get(0))
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", c.Args().Get(0), err)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	baseURL := DefaultBaseURL
	if c.NArg() >= 2 {
		baseURL = c.Args().Get(1)
	}

	assetsDir := c.String(FlagAssetsDir)
	if assetsDir != "" {
		if assetsDir, err = homedir.Expand(assetsDir); err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", c.String(FlagAssetsDir), err)
		}
	}

	// Empty unless set on the command line or via LOG_LEVEL.
	var logLevel string
	if c.IsSet(FlagLogLevel) {
		logLevel = c.String(FlagLogLevel)
	}

	return &Config{
		Root:            root,
		BaseURL:         baseURL,
		LogLevel:        logLevel,
		ThumbnailSize:   c.Int(FlagThumbnailSize),
		Workers:         c.Int(FlagWorkers),
		FailFast:        c.Bool(FlagFailFast),
		Progress:        c.Bool(FlagProgress),
		UseVips:         c.Bool(FlagUseVips),
		MetricsFile:     c.String(FlagMetricsFile),
		ServeAddr:       c.String(FlagServe),
		AssetsDir:       assetsDir,
		LogHealthChecks: c.Bool(FlagLogHealthChecks),
		MemoryLimit:     c.Int64(FlagMemoryLimit),
		MemoryRatio:     c.Float64(FlagMemoryRatio),
	}, nil
}

// Validate checks that the gallery root is an existing directory.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", c.Root)
	}
	if c.LogLevel != "" {
		if _, ok := logging.ParseLevel(c.LogLevel); !ok {
			return fmt.Errorf("unknown log level %q", c.LogLevel)
		}
	}
	if c.ThumbnailSize <= 0 {
		return fmt.Errorf("thumbnail size must be positive, got %d", c.ThumbnailSize)
	}
	return nil
}

// LogConfig prints the banner, system information and the effective
// configuration.
func LogConfig(c *Config) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Directory:           %s", c.Root)
	logging.Info("  Base URL:            %s", c.BaseURL)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())
	logging.Info("  THUMBNAIL_SIZE:      %d", c.ThumbnailSize)
	logging.Info("  THUMBNAIL_WORKERS:   %d", c.Workers)
	logging.Info("  FAIL_FAST:           %v", c.FailFast)
	logging.Info("  USE_VIPS:            %v", c.UseVips)
	logging.Info("  METRICS_FILE:        %s", valueOrNone(c.MetricsFile))
	logging.Info("  SERVE_ADDR:          %s", valueOrNone(c.ServeAddr))
	if c.ServeAddr != "" {
		logging.Info("  ASSETS_DIR:          %s", valueOrNone(c.AssetsDir))
		logging.Info("  LOG_HEALTH_CHECKS:   %v", c.LogHealthChecks)
	}
	logging.Info("")
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
