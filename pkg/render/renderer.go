package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	rendertemplate "github.com/goliatone/go-quotecard/pkg/render/template"
	"github.com/goliatone/go-quotecard/pkg/render/template/gotemplate"
)

// UnknownAuthor is shown when a quote has no author.
const UnknownAuthor = "Unknown"

// Card is the output of rendering a quote with a template.
type Card struct {
	// Requested is the identifier the caller asked for.
	Requested string
	// Template is the template that actually rendered the card.
	Template Descriptor
	// Fallback is true when Requested was empty or unknown.
	Fallback bool
	Text     string
	// Author is the displayed attribution, UnknownAuthor when absent.
	Author string
	// HTML is the sanitized card fragment.
	HTML string
	// Style holds the CSS custom properties for the card container.
	Style string
	Theme *theme.RendererConfig
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(engine rendertemplate.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.templates = engine
		}
	}
}

// WithThemeVariant selects a go-theme variant (for example "dark") for
// every card. The empty string selects the base look.
func WithThemeVariant(variant string) Option {
	return func(r *Renderer) {
		r.themeVariant = strings.TrimSpace(variant)
	}
}

// Renderer maps (template id, text, author) to a Card. It holds no
// per-call state.
type Renderer struct {
	registry     *Registry
	templates    rendertemplate.TemplateRenderer
	themeVariant string
}

// NewRenderer builds a renderer over registry using the embedded templates.
func NewRenderer(registry *Registry, options ...Option) (*Renderer, error) {
	if registry == nil {
		return nil, fmt.Errorf("render: registry is required")
	}
	r := &Renderer{registry: registry}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("cards"),
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("render: configure template renderer: %w", err)
		}
		r.templates = engine
	}

	if _, err := registry.Select(registry.Default().ID, r.themeVariant); err != nil {
		return nil, err
	}
	return r, nil
}

// Registry returns the registry the renderer dispatches over.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// ThemeVariant reports the go-theme variant applied to cards.
func (r *Renderer) ThemeVariant() string {
	return r.themeVariant
}

// Render renders text and author with the template named templateID.
// Empty or unknown identifiers render with the default template.
func (r *Renderer) Render(templateID, text, author string) (Card, error) {
	variant, known := r.registry.Resolve(templateID)
	descriptor, _ := r.registry.Lookup(string(variant))

	selection, err := r.registry.Select(string(variant), r.themeVariant)
	if err != nil {
		return Card{}, err
	}
	cfg := rendererConfig(selection)

	card := Card{
		Requested: templateID,
		Template:  descriptor,
		Fallback:  !known,
		Text:      text,
		Author:    DisplayAuthor(author),
		Style:     cssVarsStyle(cfg.CSSVars),
		Theme:     cfg,
	}

	markup, err := r.templates.RenderTemplate(cardTemplate(variant), map[string]any{
		"text":   card.Text,
		"author": card.Author,
	})
	if err != nil {
		return Card{}, fmt.Errorf("render: render card %q: %w", variant, err)
	}
	card.HTML = sanitizeCard(markup)
	return card, nil
}

// Document wraps a card in a standalone HTML page with the stylesheet
// inlined, suitable for raster capture.
func (r *Renderer) Document(card Card) (string, error) {
	title := "Quote"
	if card.Author != "" {
		title = "Quote by " + card.Author
	}
	out, err := r.templates.RenderTemplate("document", map[string]any{
		"title":      title,
		"stylesheet": Stylesheet(),
		"card": map[string]any{
			"html":     card.HTML,
			"style":    card.Style,
			"template": card.Template.ID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("render: render document: %w", err)
	}
	return out, nil
}

// DisplayAuthor applies the placeholder for missing authors.
func DisplayAuthor(author string) string {
	if trimmed := strings.TrimSpace(author); trimmed != "" {
		return trimmed
	}
	return UnknownAuthor
}
