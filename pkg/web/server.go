// Package web serves the quote card session as a small HTML application:
// a page with the card and its controls, form endpoints for each session
// operation and a PNG export endpoint.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-quotecard/pkg/export"
	"github.com/goliatone/go-quotecard/pkg/render"
	rendertemplate "github.com/goliatone/go-quotecard/pkg/render/template"
	"github.com/goliatone/go-quotecard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-quotecard/pkg/session"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const pageTemplate = "page"

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTemplateRenderer replaces the page template engine.
func WithTemplateRenderer(engine rendertemplate.TemplateRenderer) Option {
	return func(s *Server) {
		if engine != nil {
			s.pages = engine
		}
	}
}

// Server exposes one session over HTTP.
type Server struct {
	session *session.Controller
	pages   rendertemplate.TemplateRenderer
	logger  *slog.Logger
	mux     *http.ServeMux
}

// New builds a Server for controller.
func New(controller *session.Controller, options ...Option) (*Server, error) {
	if controller == nil {
		return nil, errors.New("web: session controller is required")
	}
	s := &Server{
		session: controller,
		logger:  slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.pages == nil {
		templates, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("web: templates: %w", err)
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(templates),
			gotemplate.WithName("quotecard-web"),
			gotemplate.WithGlobalData(map[string]any{"stylesheet": render.StylesheetName}),
		)
		if err != nil {
			return nil, fmt.Errorf("web: template engine: %w", err)
		}
		s.pages = engine
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	mux := http.NewServeMux()
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(render.AssetsFS())))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /{$}", s.activated(s.handleIndex))
	mux.Handle("POST /refresh", s.activated(s.handleRefresh))
	mux.Handle("POST /template", s.activated(s.handleTemplate))
	mux.Handle("POST /cycle", s.activated(s.handleCycle))
	mux.Handle("GET /export", s.activated(s.handleExport))
	mux.Handle("GET /api/templates", s.activated(s.handleTemplates))
	s.mux = mux
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// activated runs the session's initial refresh before the first page
// interaction.
func (s *Server) activated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.session.Activate(r.Context()) {
			s.logger.Debug("session activated", "path", r.URL.Path)
		}
		next(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := s.session.Snapshot()
	notice := s.session.TakeNotice()

	data := map[string]any{
		"notice":    notice,
		"templates": templateOptions(s.session.Registry().List()),
		"state": map[string]any{
			"tag":      state.TagFilter,
			"loading":  state.Loading,
			"template": state.TemplateID,
		},
	}
	card, ok, err := s.session.Card()
	if err != nil {
		s.fail(w, "render card", err)
		return
	}
	if ok {
		data["card"] = map[string]any{
			"html":     card.HTML,
			"style":    card.Style,
			"template": card.Template.ID,
		}
	}

	out, err := s.pages.RenderTemplate(pageTemplate, data)
	if err != nil {
		s.fail(w, "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(out)); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.session.RefreshQuote(r.Context(), r.PostFormValue("tag"))
	redirectHome(w, r)
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.session.SelectTemplate(r.PostFormValue("template"))
	redirectHome(w, r)
}

func (s *Server) handleCycle(w http.ResponseWriter, r *http.Request) {
	s.session.CycleTemplate()
	redirectHome(w, r)
}

// handleExport streams the card as a PNG attachment. On failure the session
// notice is set and the client is sent back to the page.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf export.Buffer
	if err := s.session.ExportCurrentView(r.Context(), &buf); err != nil {
		redirectHome(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", buf.Filename))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Data); err != nil {
		s.logger.Warn("write export", "error", err)
	}
}

type templatesResponse struct {
	Templates []render.Descriptor `json:"templates"`
	Selected  string              `json:"selected"`
	Default   string              `json:"default"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	registry := s.session.Registry()
	resp := templatesResponse{
		Templates: registry.List(),
		Selected:  s.session.Snapshot().TemplateID,
		Default:   registry.Default().ID,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("write json response", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, action string, err error) {
	s.logger.Error("request failed", "action", action, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func templateOptions(templates []render.Descriptor) []map[string]string {
	out := make([]map[string]string, len(templates))
	for i, desc := range templates {
		out[i] = map[string]string{"id": desc.ID, "name": desc.DisplayName}
	}
	return out
}
