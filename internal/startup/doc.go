// Package startup holds the command line configuration and the startup and
// shutdown logging of media-gallery.
//
// # Configuration
//
// [Flags] declares every flag with an environment variable fallback:
//
//   - --log-level / LOG_LEVEL: debug, info, warn, error (default: info)
//   - --thumbnail-size / THUMBNAIL_SIZE: thumbnail bounding box (default: 210)
//   - --workers / THUMBNAIL_WORKERS: parallel workers, 0 for one per CPU (default: 1)
//   - --fail-fast / FAIL_FAST: abort on the first failed file
//   - --progress / PROGRESS: progress bar on a terminal
//   - --metrics-file / METRICS_FILE: Prometheus textfile written after the run
//   - --serve / SERVE_ADDR: serve the tree after generation
//   - --assets-dir / ASSETS_DIR: directory served under /assets/
//   - --log-health-checks / LOG_HEALTH_CHECKS: log /healthz requests (default: true)
//   - --use-vips / USE_VIPS: decode images with libvips (default: true)
//   - --memory-limit / MEMORY_LIMIT and --memory-ratio / MEMORY_RATIO: GOMEMLIMIT
//
// [FromCLI] turns the parsed flags and the positional arguments
// <directory> [base_url] into a [Config].
//
// # External tools
//
// [LogToolChecks] probes exiftool, ffmpeg and ffprobe. A missing tool only
// fails the files that need it.
//
// # Build information
//
// Version, Commit and BuildTime are set with -ldflags:
//
//	go build -ldflags "-X media-gallery/internal/startup.Version=1.0.0"
package startup
