// Package terminal renders quote cards for ANSI terminals with lipgloss,
// following the same template registry, fallback and author rules as the
// HTML renderer.
package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-quotecard/pkg/render"
)

const defaultWidth = 64

// Option configures the terminal renderer.
type Option func(*Renderer)

// WithWidth sets the card width in cells, borders included.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width >= 20 {
			r.width = width
		}
	}
}

// WithThemeVariant picks the go-theme variant whose tokens colour the card.
func WithThemeVariant(variant string) Option {
	return func(r *Renderer) {
		r.themeVariant = strings.TrimSpace(variant)
	}
}

// Renderer draws cards as styled terminal text.
type Renderer struct {
	registry     *render.Registry
	width        int
	themeVariant string
}

// New constructs a terminal renderer over registry.
func New(registry *render.Registry, options ...Option) *Renderer {
	r := &Renderer{registry: registry, width: defaultWidth}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "terminal"
}

// Render draws the card for templateID. Unknown identifiers use the default
// template and an empty author shows render.UnknownAuthor.
func (r *Renderer) Render(templateID, text, author string) string {
	variant, _ := r.registry.Resolve(templateID)
	tokens := r.registry.Tokens(string(variant), r.themeVariant)
	author = render.DisplayAuthor(author)

	inner := r.width - 6
	card, quoteStyle, authorStyle, prefix := variantStyles(variant, tokens)

	body := quoteStyle.Width(inner).Render("“" + text + "”")
	attribution := authorStyle.Width(inner).Align(lipgloss.Right).Render(prefix + author)

	parts := []string{body, "", attribution}
	if variant == render.Cosmic {
		footer := lipgloss.NewStyle().
			Width(inner).
			Faint(true).
			Align(lipgloss.Right).
			Render("• • •  cosmic glass")
		parts = append(parts, "", footer)
	}
	return card.Width(r.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// variantStyles dispatches each variant to its terminal treatment.
func variantStyles(v render.Variant, tokens map[string]string) (card, quote, author lipgloss.Style, prefix string) {
	fg := color(tokens[render.TokenForeground])
	accent := color(tokens[render.TokenAccent])
	authorColor := color(tokens[render.TokenAuthor])
	border := color(tokens[render.TokenBorder])

	card = lipgloss.NewStyle().Padding(1, 2)
	quote = lipgloss.NewStyle().Foreground(fg)
	author = lipgloss.NewStyle().Foreground(authorColor)
	prefix = "— "

	switch v {
	case render.Paper:
		card = card.Border(lipgloss.NormalBorder()).BorderForeground(border)
		author = author.Italic(true)
	case render.Neon:
		card = card.Border(lipgloss.ThickBorder()).BorderForeground(accent)
		quote = quote.Bold(true)
	case render.Serif:
		card = card.Border(lipgloss.NormalBorder()).BorderForeground(border)
		prefix = "──── "
	case render.Minimal:
		card = card.Border(lipgloss.HiddenBorder())
	case render.Cosmic:
		card = card.Border(lipgloss.DoubleBorder()).BorderForeground(accent)
		quote = quote.Bold(true)
	default:
		card = card.Border(lipgloss.RoundedBorder()).BorderForeground(border)
		quote = quote.Bold(true)
	}
	return card, quote, author, prefix
}

// color keeps plain hex tokens; gradients and rgba values have no terminal
// equivalent and leave the default colour.
func color(token string) lipgloss.TerminalColor {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "#") && (len(token) == 4 || len(token) == 7) {
		return lipgloss.Color(token)
	}
	return lipgloss.NoColor{}
}
