package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-quotecard/pkg/export"
	"github.com/goliatone/go-quotecard/pkg/quote"
	"github.com/goliatone/go-quotecard/pkg/render"
)

// ExportFailedNotice is the user-visible notice set when an export fails.
const ExportFailedNotice = "Failed to export image"

// ErrExportUnavailable is returned by ExportCurrentView when the controller
// was built without an exporter.
var ErrExportUnavailable = errors.New("session: export is not configured")

// State is a copy of the session state.
type State struct {
	// Quote is nil until the first refresh resolves.
	Quote *quote.Quote
	// Loading is true while at least one refresh is in flight.
	Loading bool
	// TemplateID is the selected template. It may name an unknown template
	// after a server suggestion; rendering falls back in that case.
	TemplateID string
	TagFilter  string
	// Notice is the last user-visible message, cleared by TakeNotice.
	Notice string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger. Nil keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExporter enables ExportCurrentView.
func WithExporter(exporter *export.Exporter) Option {
	return func(c *Controller) {
		c.exporter = exporter
	}
}

// WithInitialTemplate overrides the initially selected template id.
func WithInitialTemplate(id string) Option {
	return func(c *Controller) {
		if id = strings.TrimSpace(id); id != "" {
			c.templateID = id
		}
	}
}

// Controller mediates between a quote source and the card renderer. It is
// safe for concurrent use; fetches run outside the lock and the last one to
// resolve determines the displayed quote.
type Controller struct {
	source   quote.Source
	renderer *render.Renderer
	registry *render.Registry
	exporter *export.Exporter
	logger   *slog.Logger

	activate sync.Once

	mu         sync.Mutex
	current    *quote.Quote
	inFlight   int
	templateID string
	tagFilter  string
	notice     string
}

// New builds a Controller. The selected template starts at the registry
// default.
func New(source quote.Source, renderer *render.Renderer, options ...Option) (*Controller, error) {
	if source == nil {
		return nil, errors.New("session: quote source is required")
	}
	if renderer == nil {
		return nil, errors.New("session: renderer is required")
	}
	registry := renderer.Registry()
	c := &Controller{
		source:     source,
		renderer:   renderer,
		registry:   registry,
		logger:     slog.Default(),
		templateID: registry.Default().ID,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Registry exposes the template registry backing the controller.
func (c *Controller) Registry() *render.Registry {
	return c.registry
}

// Activate performs the initial refresh the first time it is called and
// reports whether it did so.
func (c *Controller) Activate(ctx context.Context) bool {
	ran := false
	c.activate.Do(func() {
		ran = true
		c.RefreshQuote(ctx, "")
	})
	return ran
}

// RefreshQuote fetches a new quote, optionally narrowed to tagFilter. It
// never fails: any source error or panic yields quote.Fallback(). A
// template suggested by the backend becomes the selected template.
func (c *Controller) RefreshQuote(ctx context.Context, tagFilter string) quote.Quote {
	tag := strings.TrimSpace(tagFilter)

	c.mu.Lock()
	c.inFlight++
	c.tagFilter = tag
	c.mu.Unlock()

	q, err := c.fetch(ctx, tag)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--

	if err != nil {
		c.logger.Warn("quote fetch failed, showing fallback", "tag", tag, "error", err)
		fallback := quote.Fallback()
		c.current = &fallback
		return fallback
	}

	if suggested := strings.TrimSpace(q.Template); suggested != "" {
		if _, known := c.registry.Resolve(suggested); !known {
			c.logger.Debug("backend suggested unknown template", "template", suggested)
		}
		c.templateID = suggested
	}
	q.Template = ""
	c.current = &q
	return q
}

func (c *Controller) fetch(ctx context.Context, tag string) (q quote.Quote, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session: quote source panicked: %v", r)
		}
	}()
	q, err = c.source.Random(ctx, tag)
	if err != nil {
		return quote.Quote{}, err
	}
	if strings.TrimSpace(q.Text) == "" {
		return quote.Quote{}, quote.ErrMalformedQuote
	}
	return q, nil
}

// SelectTemplate stores id as the selected template and returns it.
func (c *Controller) SelectTemplate(id string) string {
	id = strings.TrimSpace(id)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templateID = id
	return id
}

// CycleTemplate advances to the next registered template, wrapping at the
// end. An unknown selection moves to the first template.
func (c *Controller) CycleTemplate() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templateID = c.registry.Next(c.templateID)
	return c.templateID
}

// Card renders the current quote with the selected template. ok is false
// when no quote has been loaded yet.
func (c *Controller) Card() (card render.Card, ok bool, err error) {
	c.mu.Lock()
	current, templateID := c.current, c.templateID
	c.mu.Unlock()

	if current == nil {
		return render.Card{}, false, nil
	}
	card, err = c.renderer.Render(templateID, current.Text, current.Author)
	if err != nil {
		return render.Card{}, false, err
	}
	return card, true, nil
}

// ExportCurrentView captures the current card and hands it to dst as
// export.Filename. Failures never panic: they are logged, recorded as the
// ExportFailedNotice and returned.
func (c *Controller) ExportCurrentView(ctx context.Context, dst export.Downloader) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session: export panicked: %v", r)
		}
		if err != nil {
			c.logger.Error("export failed", "error", err)
			c.setNotice(ExportFailedNotice)
		}
	}()

	if c.exporter == nil {
		return ErrExportUnavailable
	}
	card, ok, err := c.Card()
	if err != nil {
		return fmt.Errorf("session: render card: %w", err)
	}
	if !ok {
		return export.ErrNoQuote
	}
	if err := c.exporter.Export(ctx, card, dst); err != nil {
		return err
	}
	c.logger.Info("exported card", "template", card.Template.ID, "file", export.Filename)
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := State{
		Loading:    c.inFlight > 0,
		TemplateID: c.templateID,
		TagFilter:  c.tagFilter,
		Notice:     c.notice,
	}
	if c.current != nil {
		q := *c.current
		state.Quote = &q
	}
	return state
}

// TakeNotice returns the pending notice and clears it.
func (c *Controller) TakeNotice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	notice := c.notice
	c.notice = ""
	return notice
}

func (c *Controller) setNotice(notice string) {
	c.mu.Lock()
	c.notice = notice
	c.mu.Unlock()
}
