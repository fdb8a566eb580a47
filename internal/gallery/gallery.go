package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/metrics"
	"media-gallery/internal/mediatypes"
)

// IndexFile is the name of the page written into every gallery directory.
const IndexFile = "index.html"

// Prober reads one integer field of the first video stream of a file.
type Prober interface {
	ProbeDimension(ctx context.Context, path, field string) (int, error)
}

// Item is one thumbnail link on a gallery page.
type Item struct {
	Path      string
	Href      string
	Thumbnail string
	Width     int
	Height    int
	Video     bool
}

// Page describes a written index.html.
type Page struct {
	Dir    string
	Path   string
	Items  []Item
	Errors []error
}

// Err joins the per-item failures of the page.
func (p *Page) Err() error {
	return errors.Join(p.Errors...)
}

// Generator writes index.html pages for directories below Root.
type Generator struct {
	Root       string
	BaseURL    string
	Classifier mediatypes.Classifier
	Prober     Prober

	// Dimensions measures images. Nil selects media.ImageDimensions.
	Dimensions func(path string) (media.Dimensions, error)
}

func (g *Generator) base() string {
	return strings.TrimSuffix(g.BaseURL, "/")
}

// urlFor returns base/galleries/<rel dir>/<name> with every path segment
// escaped. A file directly below Root has the relative directory ".".
func (g *Generator) urlFor(path string) (string, error) {
	rel, err := filepath.Rel(g.Root, filepath.Dir(path))
	if err != nil {
		return "", err
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")
	segments = append(segments, filepath.Base(path))
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return g.base() + "/galleries/" + strings.Join(segments, "/"), nil
}

func (g *Generator) dimensions(ctx context.Context, entry media.Entry) (media.Dimensions, error) {
	if entry.Kind == mediatypes.FileTypeImage {
		measure := g.Dimensions
		if measure == nil {
			measure = media.ImageDimensions
		}
		return measure(entry.Path)
	}

	width, err := g.Prober.ProbeDimension(ctx, entry.Path, "width")
	if err != nil {
		return media.Dimensions{}, err
	}
	height, err := g.Prober.ProbeDimension(ctx, entry.Path, "height")
	if err != nil {
		return media.Dimensions{}, err
	}
	return media.Dimensions{Width: width, Height: height}, nil
}

func (g *Generator) item(ctx context.Context, entry media.Entry) (Item, error) {
	dims, err := g.dimensions(ctx, entry)
	if err != nil {
		return Item{}, fmt.Errorf("failed to measure %s: %w", entry.Path, err)
	}

	href, err := g.urlFor(entry.Path)
	if err != nil {
		return Item{}, err
	}
	thumb, err := g.urlFor(media.ThumbnailPath(entry.Path, entry.Kind))
	if err != nil {
		return Item{}, err
	}

	return Item{
		Path:      entry.Path,
		Href:      href,
		Thumbnail: thumb,
		Width:     dims.Width,
		Height:    dims.Height,
		Video:     entry.Kind == mediatypes.FileTypeVideo,
	}, nil
}

// Collect scans dir recursively and builds an item for every processable
// file whose thumbnail exists. Items that cannot be measured are left out
// and reported in the returned page's Errors.
func (g *Generator) Collect(ctx context.Context, dir string) (*Page, error) {
	page := &Page{Dir: dir, Path: filepath.Join(dir, IndexFile)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Warn("Gallery: cannot access %s: %v", path, err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}

		entry, ok := media.Inspect(path, g.Classifier)
		if !ok {
			return nil
		}

		thumb := media.ThumbnailPath(path, entry.Kind)
		exists, err := filesystem.Exists(thumb)
		if err != nil {
			logging.Warn("Gallery: cannot check thumbnail %s: %v", thumb, err)
			return nil
		}
		if !exists {
			return nil
		}

		item, err := g.item(ctx, entry)
		if err != nil {
			logging.Warn("Gallery: skipping %s: %v", path, err)
			page.Errors = append(page.Errors, err)
			return nil
		}
		page.Items = append(page.Items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(page.Items, func(i, j int) bool {
		return page.Items[i].Path < page.Items[j].Path
	})
	return page, nil
}

// Render writes the HTML of page.
func (g *Generator) Render(page *Page) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Assets:      g.base() + "/assets",
		ItemWidth:   ItemWidth,
		ColumnWidth: ColumnWidth,
		Items:       page.Items,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", page.Path, err)
	}
	return buf.Bytes(), nil
}

// Generate regenerates dir/index.html, always overwriting it.
func (g *Generator) Generate(ctx context.Context, dir string) (*Page, error) {
	logging.Info("Generating gallery html for %s", dir)

	page, err := g.Collect(ctx, dir)
	if err != nil {
		metrics.GalleryPagesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	html, err := g.Render(page)
	if err != nil {
		metrics.GalleryPagesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := filesystem.WriteFileAtomic(page.Path, html); err != nil {
		metrics.GalleryPagesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.GalleryPagesTotal.WithLabelValues("success").Inc()
	for _, item := range page.Items {
		kind := mediatypes.FileTypeImage
		if item.Video {
			kind = mediatypes.FileTypeVideo
		}
		metrics.GalleryItemsTotal.WithLabelValues(string(kind)).Inc()
	}
	logging.Debug("Gallery: wrote %s with %d items", page.Path, len(page.Items))
	return page, nil
}
