// Package prompt runs the interactive terminal session: a menu loop that
// refreshes quotes, switches templates and exports the card.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-quotecard/pkg/export"
	"github.com/goliatone/go-quotecard/pkg/render"
	"github.com/goliatone/go-quotecard/pkg/renderers/terminal"
	"github.com/goliatone/go-quotecard/pkg/session"
)

// Menu actions, in display order.
const (
	ActionRefresh = "New quote"
	ActionChoose  = "Choose template"
	ActionShuffle = "Shuffle style"
	ActionExport  = "Export PNG"
	ActionQuit    = "Quit"
)

var actions = []string{ActionRefresh, ActionChoose, ActionShuffle, ActionExport, ActionQuit}

// Option configures a Loop.
type Option func(*Loop)

// WithDriver replaces the survey driver.
func WithDriver(driver Driver) Option {
	return func(l *Loop) {
		if driver != nil {
			l.driver = driver
		}
	}
}

// WithTerminal replaces the card renderer.
func WithTerminal(renderer *terminal.Renderer) Option {
	return func(l *Loop) {
		if renderer != nil {
			l.cards = renderer
		}
	}
}

// WithDownloader sets where exports are delivered. Defaults to the working
// directory.
func WithDownloader(dst export.Downloader) Option {
	return func(l *Loop) {
		if dst != nil {
			l.downloads = dst
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop drives a session from terminal prompts.
type Loop struct {
	session   *session.Controller
	driver    Driver
	cards     *terminal.Renderer
	downloads export.Downloader
	logger    *slog.Logger
}

// New builds a Loop over controller.
func New(controller *session.Controller, options ...Option) (*Loop, error) {
	if controller == nil {
		return nil, ErrNoController
	}
	l := &Loop{
		session:   controller,
		downloads: &export.DirDownloader{Dir: "."},
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	if l.driver == nil {
		l.driver = NewSurveyDriver(nil)
	}
	if l.cards == nil {
		l.cards = terminal.New(controller.Registry())
	}
	return l, nil
}

// Run activates the session and prompts until the user quits or aborts.
// Aborting is not an error.
func (l *Loop) Run(ctx context.Context) error {
	l.session.Activate(ctx)
	for {
		if err := l.show(ctx); err != nil {
			return err
		}
		idx, err := l.driver.Select(ctx, SelectConfig{
			Message: "What next?",
			Options: actions,
		})
		if err != nil {
			return quitErr(err)
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		switch actions[idx] {
		case ActionRefresh:
			tag, err := l.driver.Input(ctx, InputConfig{
				Message: "Tag filter (optional)",
				Default: l.session.Snapshot().TagFilter,
				Help:    "Leave empty for any quote.",
			})
			if err != nil {
				return quitErr(err)
			}
			l.session.RefreshQuote(ctx, tag)
		case ActionChoose:
			if err := l.choose(ctx); err != nil {
				return quitErr(err)
			}
		case ActionShuffle:
			l.session.CycleTemplate()
		case ActionExport:
			l.export(ctx)
		case ActionQuit:
			return nil
		}
	}
}

func (l *Loop) show(ctx context.Context) error {
	state := l.session.Snapshot()
	if state.Quote != nil {
		card := l.cards.Render(state.TemplateID, state.Quote.Text, state.Quote.Author)
		if err := l.driver.Info(ctx, card); err != nil {
			return err
		}
	}
	if notice := l.session.TakeNotice(); notice != "" {
		if err := l.driver.Info(ctx, "! "+notice); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) choose(ctx context.Context) error {
	registry := l.session.Registry()
	templates := registry.List()
	options := make([]string, len(templates))
	for i, desc := range templates {
		options[i] = desc.DisplayName
	}
	current := registry.Index(l.session.Snapshot().TemplateID)
	idx, err := l.driver.Select(ctx, SelectConfig{
		Message:      "Template",
		Options:      options,
		DefaultIndex: current,
		PageSize:     len(options),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(templates) {
		return nil
	}
	l.session.SelectTemplate(templates[idx].ID)
	return nil
}

func (l *Loop) export(ctx context.Context) {
	if err := l.session.ExportCurrentView(ctx, l.downloads); err != nil {
		l.logger.Debug("interactive export failed", "error", err)
		return
	}
	msg := "Exported " + export.Filename
	if dir, ok := l.downloads.(*export.DirDownloader); ok && dir.LastPath() != "" {
		msg = "Saved " + dir.LastPath()
	}
	_ = l.driver.Info(ctx, msg)
}

func quitErr(err error) error {
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return fmt.Errorf("prompt: %w", err)
}

// Describe lists templates as "id  Display Name" lines for non-interactive
// output.
func Describe(templates []render.Descriptor) string {
	var b strings.Builder
	for _, desc := range templates {
		fmt.Fprintf(&b, "%-8s %s\n", desc.ID, desc.DisplayName)
	}
	return b.String()
}
