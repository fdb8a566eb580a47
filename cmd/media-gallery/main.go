package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/gallery"
	"media-gallery/internal/handlers"
	"media-gallery/internal/indexer"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/memory"
	"media-gallery/internal/metrics"
	"media-gallery/internal/middleware"
	"media-gallery/internal/startup"
	"media-gallery/internal/transcoder"
	"media-gallery/internal/workers"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args)
	stop()
	logging.Sync()
	os.Exit(code)
}

// run parses args and generates the gallery. It returns the process exit
// code.
func run(ctx context.Context, args []string) int {
	code := 0

	app := &cli.App{
		Name:            "media-gallery",
		Usage:           "strip EXIF, generate thumbnails and write PhotoSwipe gallery pages for a directory tree",
		UsageText:       "media-gallery [flags] <directory> [base_url]",
		Version:         startup.Version,
		Flags:           startup.Flags(),
		HideHelpCommand: true,
		// exit codes are returned from run, never from inside cli
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			cfg, err := startup.FromCLI(c)
			if errors.Is(err, startup.ErrMissingDirectory) {
				_ = cli.ShowAppHelp(c)
				code = 1
				return nil
			}
			if err != nil {
				return err
			}
			code = generate(c.Context, cfg)
			return nil
		},
	}

	if err := app.RunContext(ctx, args); err != nil {
		logging.Error("%v", err)
		return 1
	}
	return code
}

func generate(ctx context.Context, cfg *startup.Config) int {
	startTime := time.Now()

	if cfg.LogLevel != "" {
		if level, ok := logging.ParseLevel(cfg.LogLevel); ok {
			logging.SetLevel(level)
		}
	}

	startup.LogConfig(cfg)
	if err := cfg.Validate(); err != nil {
		logging.Error("Configuration error: %v", err)
		return 1
	}
	startup.LogMemoryConfig(memory.Configure(memory.Options{
		ContainerLimit: cfg.MemoryLimit,
		Ratio:          cfg.MemoryRatio,
	}))

	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	metrics.InitializeMetrics()
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	startup.LogToolChecks()

	if cfg.UseVips {
		err := media.InitVips()
		startup.LogVipsInit(true, err)
		if err == nil {
			defer media.ShutdownVips()
		}
	} else {
		startup.LogVipsInit(false, nil)
	}

	stripper := media.NewExiftoolStripper()
	defer func() {
		if err := stripper.Close(); err != nil {
			logging.Warn("Closing exiftool: %v", err)
		}
	}()

	trans := transcoder.New()
	classifier := mediatypes.ContentClassifier{}
	thumbnails := media.NewThumbnailGenerator(media.ImagingConverter{UseVips: cfg.UseVips}, trans, cfg.ThumbnailSize)
	pages := &gallery.Generator{
		Root:       cfg.Root,
		BaseURL:    cfg.BaseURL,
		Classifier: classifier,
		Prober:     trans,
	}

	walker := indexer.New(cfg.Root, classifier, stripper, thumbnails, pages)
	walker.Workers = workers.Resolve(cfg.Workers)
	walker.FailFast = cfg.FailFast
	walker.Progress = cfg.Progress && term.IsTerminal(int(os.Stderr.Fd()))

	var (
		srv      *http.Server
		serveErr = make(chan error, 1)
	)
	if cfg.ServeAddr != "" {
		ln, err := net.Listen("tcp", cfg.ServeAddr)
		if err != nil {
			logging.Error("Cannot listen on %s: %v", cfg.ServeAddr, err)
			return 1
		}
		srv = newServer(cfg, walker)
		startup.LogServerStarted(cfg.ServeAddr, time.Since(startTime))
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
		}()
	}

	code := 0
	result, err := walker.Walk(ctx)
	if err != nil || result.Failed > 0 {
		code = 1
	}
	if result.Errors != nil {
		logging.Warn("%d entries failed:\n%v", result.Failed, result.Errors)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logging.Error("Writing metrics file: %v", err)
			code = 1
		} else {
			logging.Info("Metrics written to %s", cfg.MetricsFile)
		}
	}

	if srv == nil {
		return code
	}

	select {
	case <-ctx.Done():
		startup.LogShutdownInitiated("signal received")
	case err := <-serveErr:
		logging.Error("Server error: %v", err)
		code = 1
	}
	shutdown(srv)
	return code
}

func newServer(cfg *startup.Config, walker *indexer.Walker) *http.Server {
	h := handlers.New(walker, cfg.Root, cfg.AssetsDir)
	router := h.Router()
	startup.LogHTTPRoutes(router)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = cfg.LogHealthChecks

	handler := middleware.Logger(loggingConfig)(
		middleware.Metrics(middleware.DefaultMetricsConfig())(router),
	)

	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}
	startup.LogShutdownComplete()
}
