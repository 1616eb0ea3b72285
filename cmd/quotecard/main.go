package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	quotecard "github.com/goliatone/go-quotecard"
	"github.com/goliatone/go-quotecard/internal/config"
	"github.com/goliatone/go-quotecard/pkg/export"
	"github.com/goliatone/go-quotecard/pkg/prompt"
	"github.com/goliatone/go-quotecard/pkg/render"
	"github.com/goliatone/go-quotecard/pkg/renderers/terminal"
	"github.com/goliatone/go-quotecard/pkg/session"
	"github.com/goliatone/go-quotecard/pkg/web"
)

const shutdownGrace = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *environment) error
}

var commands = []command{
	{"show", "fetch a quote and print it as a terminal card", runShow},
	{"interactive", "browse quotes and templates from a prompt menu", runInteractive},
	{"serve", "serve the quote card page over HTTP", runServe},
	{"export", "fetch a quote and save the card as quote.png", runExport},
	{"templates", "list the available templates", runTemplates},
}

type environment struct {
	cfg      config.Config
	tag      string
	template string
	stdout   io.Writer
	logger   *slog.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stderr)
		return nil
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	env := &environment{stdout: stdout}

	flagSet := pflag.NewFlagSet(cmd.name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	cfg.BindFlags(flagSet)
	flagSet.StringVar(&env.tag, "tag", "", "only fetch quotes with this tag")
	flagSet.StringVar(&env.template, "template", "", "template id to render with")
	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	env.cfg = cfg
	env.logger = cfg.Logger(stderr)
	return cmd.run(ctx, env)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "quotecard renders random quotes as decorative cards.\n\nUsage:\n  quotecard <command> [flags]\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(w, "\nRun \"quotecard <command> --help\" for command flags.\n")
}

func (e *environment) session(withExport bool) (*session.Controller, error) {
	options := []quotecard.Option{
		quotecard.WithBaseURL(e.cfg.BackendURL),
		quotecard.WithTimeout(e.cfg.Timeout),
		quotecard.WithOverridesFile(e.cfg.TemplateOverrides),
		quotecard.WithThemeVariant(e.cfg.ThemeVariant),
		quotecard.WithLogger(e.logger),
	}
	if withExport {
		var chromeOpts []export.ChromeOption
		if e.cfg.ChromePath != "" {
			chromeOpts = append(chromeOpts, export.WithExecPath(e.cfg.ChromePath))
		}
		options = append(options,
			quotecard.WithCapturer(export.NewChromeCapturer(chromeOpts...)),
			quotecard.WithPixelRatio(e.cfg.PixelRatio),
		)
	}
	return quotecard.NewSession(options...)
}

// load fetches the first quote and applies --template.
func (e *environment) load(ctx context.Context, controller *session.Controller) {
	controller.RefreshQuote(ctx, e.tag)
	if e.template != "" {
		if !controller.Registry().Has(e.template) {
			e.logger.Warn("unknown template, using default", "template", e.template)
		}
		controller.SelectTemplate(e.template)
	}
}

func (e *environment) terminal(controller *session.Controller) *terminal.Renderer {
	return terminal.New(controller.Registry(), terminal.WithThemeVariant(e.cfg.ThemeVariant))
}

func runShow(ctx context.Context, env *environment) error {
	controller, err := env.session(false)
	if err != nil {
		return err
	}
	env.load(ctx, controller)

	state := controller.Snapshot()
	card := env.terminal(controller).Render(state.TemplateID, state.Quote.Text, state.Quote.Author)
	_, err = fmt.Fprintln(env.stdout, card)
	return err
}

func runInteractive(ctx context.Context, env *environment) error {
	controller, err := env.session(true)
	if err != nil {
		return err
	}
	if env.tag != "" || env.template != "" {
		env.load(ctx, controller)
	}
	loop, err := prompt.New(controller,
		prompt.WithDriver(prompt.NewSurveyDriver(env.stdout)),
		prompt.WithTerminal(env.terminal(controller)),
		prompt.WithDownloader(&export.DirDownloader{Dir: env.cfg.ExportDir}),
		prompt.WithLogger(env.logger),
	)
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}

func runServe(ctx context.Context, env *environment) error {
	controller, err := env.session(true)
	if err != nil {
		return err
	}
	srv, err := web.New(controller, web.WithLogger(env.logger))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              env.cfg.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	env.logger.Info("listening", "addr", env.cfg.Listen, "backend", env.cfg.BackendURL)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runExport(ctx context.Context, env *environment) error {
	controller, err := env.session(true)
	if err != nil {
		return err
	}
	env.load(ctx, controller)

	dst := &export.DirDownloader{Dir: env.cfg.ExportDir}
	if err := controller.ExportCurrentView(ctx, dst); err != nil {
		return fmt.Errorf("%s: %w", controller.TakeNotice(), err)
	}
	_, err = fmt.Fprintf(env.stdout, "Saved %s\n", dst.LastPath())
	return err
}

func runTemplates(_ context.Context, env *environment) error {
	registry, err := render.NewRegistry()
	if env.cfg.TemplateOverrides != "" {
		var overrides render.Overrides
		if overrides, err = render.LoadOverrides(env.cfg.TemplateOverrides); err == nil {
			registry, err = render.NewRegistry(render.WithOverrides(overrides))
		}
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(env.stdout, prompt.Describe(registry.List()))
	return err
}
