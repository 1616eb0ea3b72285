// Package export turns rendered cards into PNG downloads.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-quotecard/pkg/render"
)

const (
	// Filename is the fixed name of exported images.
	Filename = "quote.png"
	// DefaultPixelRatio is the device pixel ratio used for captures.
	DefaultPixelRatio = 2.0
	// DefaultViewportWidth is the CSS viewport width used for captures.
	DefaultViewportWidth = 800
	// DefaultViewportHeight is the CSS viewport height used for captures.
	DefaultViewportHeight = 600
)

var (
	// ErrEmptyImage reports a capture that produced no bytes.
	ErrEmptyImage = errors.New("export: capture produced an empty image")
	// ErrNoQuote reports an export requested before any quote was shown.
	ErrNoQuote = errors.New("export: no quote to export")
)

// Options controls raster capture.
type Options struct {
	PixelRatio float64
	Width      int
	Height     int
}

func (o Options) withDefaults() Options {
	if o.PixelRatio <= 0 {
		o.PixelRatio = DefaultPixelRatio
	}
	if o.Width <= 0 {
		o.Width = DefaultViewportWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultViewportHeight
	}
	return o
}

// Capturer rasterises a standalone HTML document containing a #quote-card
// node into PNG bytes.
type Capturer interface {
	Capture(ctx context.Context, document string, opts Options) ([]byte, error)
}

// CapturerFunc adapts a function into a Capturer.
type CapturerFunc func(ctx context.Context, document string, opts Options) ([]byte, error)

// Capture implements Capturer.
func (f CapturerFunc) Capture(ctx context.Context, document string, opts Options) ([]byte, error) {
	return f(ctx, document, opts)
}

// Downloader delivers an exported file to the user.
type Downloader interface {
	Download(ctx context.Context, filename string, data []byte) error
}

// DocumentRenderer wraps a card in a capturable HTML document.
type DocumentRenderer interface {
	Document(card render.Card) (string, error)
}

// Exporter captures cards and hands the PNG to a Downloader.
type Exporter struct {
	documents DocumentRenderer
	capturer  Capturer
	options   Options
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithOptions overrides the capture options.
func WithOptions(opts Options) ExporterOption {
	return func(e *Exporter) {
		e.options = opts
	}
}

// WithPixelRatio overrides only the pixel ratio.
func WithPixelRatio(ratio float64) ExporterOption {
	return func(e *Exporter) {
		e.options.PixelRatio = ratio
	}
}

// NewExporter builds an exporter.
func NewExporter(documents DocumentRenderer, capturer Capturer, options ...ExporterOption) (*Exporter, error) {
	if documents == nil {
		return nil, errors.New("export: document renderer is required")
	}
	if capturer == nil {
		return nil, errors.New("export: capturer is required")
	}
	e := &Exporter{documents: documents, capturer: capturer}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	e.options = e.options.withDefaults()
	return e, nil
}

// Options reports the effective capture options.
func (e *Exporter) Options() Options {
	return e.options
}

// Export captures card and delivers it as Filename through dst.
func (e *Exporter) Export(ctx context.Context, card render.Card, dst Downloader) error {
	if dst == nil {
		return errors.New("export: downloader is required")
	}
	doc, err := e.documents.Document(card)
	if err != nil {
		return fmt.Errorf("export: build document: %w", err)
	}
	data, err := e.capturer.Capture(ctx, doc, e.options)
	if err != nil {
		return fmt.Errorf("export: capture: %w", err)
	}
	if len(data) == 0 {
		return ErrEmptyImage
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("export: capture is not a PNG: %w", err)
	}
	if err := dst.Download(ctx, Filename, data); err != nil {
		return fmt.Errorf("export: download: %w", err)
	}
	return nil
}

// DirDownloader writes downloads into a directory.
type DirDownloader struct {
	Dir string

	mu   sync.Mutex
	last string
}

// Download writes data to Dir/filename, creating Dir when needed.
func (d *DirDownloader) Download(_ context.Context, filename string, data []byte) error {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	d.mu.Lock()
	d.last = path
	d.mu.Unlock()
	return nil
}

// LastPath reports where the most recent download was written.
func (d *DirDownloader) LastPath() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Buffer keeps a download in memory, for surfaces that stream it themselves.
type Buffer struct {
	Filename string
	Data     []byte
}

// Download implements Downloader.
func (b *Buffer) Download(_ context.Context, filename string, data []byte) error {
	b.Filename = filename
	b.Data = append(b.Data[:0], data...)
	return nil
}
