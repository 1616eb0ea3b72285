// Package quotecard fetches quotes from a quote API and renders them as
// decorative cards. It wires the quote client, the template registry, the
// renderer and the exporter into a session with sensible defaults; the
// packages under pkg/ stay available for callers that need finer control.
package quotecard

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/goliatone/go-quotecard/pkg/export"
	"github.com/goliatone/go-quotecard/pkg/quote"
	"github.com/goliatone/go-quotecard/pkg/render"
	"github.com/goliatone/go-quotecard/pkg/session"
)

// Quote aliases quote.Quote.
type Quote = quote.Quote

// Card aliases render.Card.
type Card = render.Card

// TemplateDescriptor aliases render.Descriptor.
type TemplateDescriptor = render.Descriptor

// Option customises NewSession.
type Option func(*settings)

type settings struct {
	baseURL       string
	timeout       time.Duration
	source        quote.Source
	overridesPath string
	themeVariant  string
	capturer      export.Capturer
	pixelRatio    float64
	logger        *slog.Logger
}

// WithBaseURL points the quote client at a backend.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.baseURL = baseURL
	}
}

// WithTimeout bounds each quote request.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithSource replaces the HTTP quote client.
func WithSource(source quote.Source) Option {
	return func(s *settings) {
		s.source = source
	}
}

// WithOverridesFile loads template token overrides from a YAML or JSON file.
func WithOverridesFile(path string) Option {
	return func(s *settings) {
		s.overridesPath = path
	}
}

// WithThemeVariant renders every card with a theme variant such as "dark".
func WithThemeVariant(variant string) Option {
	return func(s *settings) {
		s.themeVariant = variant
	}
}

// WithCapturer enables export through capturer.
func WithCapturer(capturer export.Capturer) Option {
	return func(s *settings) {
		s.capturer = capturer
	}
}

// WithPixelRatio sets the export pixel density multiplier.
func WithPixelRatio(ratio float64) Option {
	return func(s *settings) {
		s.pixelRatio = ratio
	}
}

// WithLogger sets the logger shared by the session components.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// NewSession assembles a session controller. Without WithCapturer the
// session cannot export.
func NewSession(options ...Option) (*session.Controller, error) {
	s := settings{logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}

	registry, err := newRegistry(s.overridesPath)
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewRenderer(registry, render.WithThemeVariant(s.themeVariant))
	if err != nil {
		return nil, fmt.Errorf("quotecard: renderer: %w", err)
	}

	source := s.source
	if source == nil {
		var clientOpts []quote.Option
		if s.baseURL != "" {
			clientOpts = append(clientOpts, quote.WithBaseURL(s.baseURL))
		}
		if s.timeout > 0 {
			clientOpts = append(clientOpts, quote.WithTimeout(s.timeout))
		}
		client, err := quote.NewClient(clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("quotecard: quote client: %w", err)
		}
		source = client
	}

	sessionOpts := []session.Option{session.WithLogger(s.logger)}
	if s.capturer != nil {
		exporter, err := export.NewExporter(renderer, s.capturer, export.WithPixelRatio(s.pixelRatio))
		if err != nil {
			return nil, fmt.Errorf("quotecard: exporter: %w", err)
		}
		sessionOpts = append(sessionOpts, session.WithExporter(exporter))
	}
	return session.New(source, renderer, sessionOpts...)
}

func newRegistry(overridesPath string) (*render.Registry, error) {
	if overridesPath == "" {
		return render.NewRegistry()
	}
	overrides, err := render.LoadOverrides(overridesPath)
	if err != nil {
		return nil, fmt.Errorf("quotecard: %w", err)
	}
	registry, err := render.NewRegistry(render.WithOverrides(overrides))
	if err != nil {
		return nil, fmt.Errorf("quotecard: %w", err)
	}
	return registry, nil
}

// Templates lists the built-in templates in cycle order.
func Templates() []TemplateDescriptor {
	return render.MustNewRegistry().List()
}

// Render renders a card with the built-in templates. Unknown ids fall back
// to the default template.
func Render(templateID, text, author string) (Card, error) {
	renderer, err := render.NewRenderer(render.MustNewRegistry())
	if err != nil {
		return Card{}, err
	}
	return renderer.Render(templateID, text, author)
}
