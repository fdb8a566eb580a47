package indexer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/gallery"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"
)

// Thumbnailer makes sure the thumbnail of an entry exists.
type Thumbnailer interface {
	Ensure(ctx context.Context, entry media.Entry) (media.Outcome, error)
}

// PageGenerator writes the gallery page of a directory.
type PageGenerator interface {
	Generate(ctx context.Context, dir string) (*gallery.Page, error)
}

// Walker processes a gallery tree in three passes: collect the processable
// entries, strip and thumbnail each of them, then write one page per
// directory that received at least one thumbnail.
type Walker struct {
	Root       string
	Classifier mediatypes.Classifier
	Stripper   media.MetadataStripper
	Thumbnails Thumbnailer
	Gallery    PageGenerator

	// Workers above 1 runs the thumbnail pass in parallel.
	Workers int
	// FailFast aborts the walk on the first entry error.
	FailFast bool
	// Progress shows a progress bar on stderr during the thumbnail pass.
	Progress bool

	startTime time.Time
	statusMu  sync.Mutex
	status    HealthStatus
}

// New creates a Walker with the given collaborators.
func New(root string, classifier mediatypes.Classifier, stripper media.MetadataStripper, thumbnails Thumbnailer, pages PageGenerator) *Walker {
	return &Walker{
		Root:       root,
		Classifier: classifier,
		Stripper:   stripper,
		Thumbnails: thumbnails,
		Gallery:    pages,
		Workers:    1,
		startTime:  time.Now(),
	}
}

// Result summarizes a walk.
type Result struct {
	// Directories that received at least one thumbnail, sorted.
	Directories []string
	Generated   int
	Skipped     int
	Ignored     int
	Failed      int
	Pages       int
	// Errors joins every isolated per-entry and per-page failure.
	Errors error
}

// walkState collects the outcome of the thumbnail pass. One instance is
// owned by a single Walk call.
type walkState struct {
	mu        sync.Mutex
	dirs      map[string]struct{}
	generated int
	skipped   int
	failed    int
	errs      []error
}

func (s *walkState) done(entry media.Entry, outcome media.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch outcome {
	case media.OutcomeGenerated:
		s.generated++
	case media.OutcomeSkipped:
		s.skipped++
	default:
		return
	}
	s.dirs[filepath.Dir(entry.Path)] = struct{}{}
}

func (s *walkState) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
	s.errs = append(s.errs, err)
}

// Walk runs all three passes. Per-entry failures are isolated and reported
// in Result.Errors unless FailFast is set; the returned error is non-nil
// only when the walk was aborted.
func (w *Walker) Walk(ctx context.Context) (*Result, error) {
	start := time.Now()
	w.setWalking(true)
	logging.Info("Starting walk of %s", w.Root)

	result, err := w.walk(ctx)

	duration := time.Since(start)
	metrics.WalkRunsTotal.Inc()
	metrics.WalkLastRunTimestamp.Set(float64(time.Now().Unix()))
	metrics.WalkLastRunDuration.Set(duration.Seconds())
	metrics.WalkGalleryDirectories.Set(float64(len(result.Directories)))

	w.finish(result, err)

	if err != nil {
		logging.Error("Walk of %s aborted after %v: %v", w.Root, duration, err)
		return result, err
	}
	logging.Info("Walk complete in %v: %d generated, %d skipped, %d failed, %d pages",
		duration, result.Generated, result.Skipped, result.Failed, result.Pages)
	return result, nil
}

func (w *Walker) walk(ctx context.Context) (*Result, error) {
	result := &Result{}

	info, err := filesystem.StatWithRetry(w.Root, filesystem.DefaultRetryConfig())
	if err != nil {
		return result, fmt.Errorf("cannot access %s: %w", w.Root, err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("%s is not a directory", w.Root)
	}

	entries, ignored, err := w.collect(ctx)
	result.Ignored = ignored
	if err != nil {
		return result, err
	}
	logging.Info("Found %d media files (%d entries ignored)", len(entries), ignored)

	state := &walkState{dirs: make(map[string]struct{})}
	err = w.process(ctx, entries, state)

	result.Generated = state.generated
	result.Skipped = state.skipped
	result.Failed = state.failed
	for dir := range state.dirs {
		result.Directories = append(result.Directories, dir)
	}
	sort.Strings(result.Directories)

	if err != nil {
		result.Errors = errors.Join(state.errs...)
		return result, err
	}

	pageErrs, err := w.generatePages(ctx, result)
	result.Errors = errors.Join(append(state.errs, pageErrs...)...)
	return result, err
}

// collect is the first pass. Unreadable subtrees are logged and skipped.
func (w *Walker) collect(ctx context.Context) ([]media.Entry, int, error) {
	var entries []media.Entry
	ignored := 0

	err := filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Warn("Cannot access %s: %v", path, err)
			metrics.WalkEntriesTotal.WithLabelValues("failed").Inc()
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}

		entry, ok := media.Inspect(path, w.Classifier)
		if !ok {
			ignored++
			metrics.WalkEntriesTotal.WithLabelValues("ignored").Inc()
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	return entries, ignored, err
}

// process is the second pass.
func (w *Walker) process(ctx context.Context, entries []media.Entry, state *walkState) error {
	var bar *pb.ProgressBar
	if w.Progress && len(entries) > 0 {
		bar = pb.StartNew(len(entries))
		defer bar.Finish()
	}

	handle := func(ctx context.Context, entry media.Entry) error {
		err := w.processEntry(ctx, entry, state)
		if bar != nil {
			bar.Increment()
		}
		return err
	}

	if w.Workers <= 1 {
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := handle(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	}

	logging.Debug("Processing %d entries with %d workers", len(entries), w.Workers)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.Workers)
	for _, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return handle(gctx, entry)
		})
	}
	return g.Wait()
}

// processEntry strips and thumbnails one entry. It returns an error only
// when the walk must stop.
func (w *Walker) processEntry(ctx context.Context, entry media.Entry, state *walkState) error {
	outcome, err := w.thumbnail(ctx, entry)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.WalkEntriesTotal.WithLabelValues("failed").Inc()
		logging.Error("Failed to process %s: %v", entry.Path, err)
		state.fail(err)
		if w.FailFast {
			return err
		}
		return nil
	}

	metrics.WalkEntriesTotal.WithLabelValues("processed").Inc()
	state.done(entry, outcome)
	return nil
}

func (w *Walker) thumbnail(ctx context.Context, entry media.Entry) (media.Outcome, error) {
	if err := media.StripMetadata(ctx, entry, w.Stripper); err != nil {
		return "", fmt.Errorf("failed to strip metadata from %s: %w", entry.Path, err)
	}
	return w.Thumbnails.Ensure(ctx, entry)
}

// generatePages is the third pass.
func (w *Walker) generatePages(ctx context.Context, result *Result) ([]error, error) {
	var errs []error
	for _, dir := range result.Directories {
		if err := ctx.Err(); err != nil {
			return errs, err
		}

		page, err := w.Gallery.Generate(ctx, dir)
		if err != nil {
			if ctx.Err() != nil {
				return errs, ctx.Err()
			}
			logging.Error("Failed to generate gallery for %s: %v", dir, err)
			result.Failed++
			errs = append(errs, err)
			if w.FailFast {
				return errs, err
			}
			continue
		}

		result.Pages++
		if len(page.Errors) > 0 {
			result.Failed += len(page.Errors)
			errs = append(errs, page.Errors...)
			if w.FailFast {
				return errs, page.Err()
			}
		}
	}
	return errs, nil
}
