// Package config loads runtime settings from QUOTECARD_* environment
// variables and lets command-line flags override them.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Config holds every setting shared by the quotecard commands.
type Config struct {
	BackendURL        string        `env:"QUOTECARD_BACKEND_URL" envDefault:"http://localhost:8000"`
	Timeout           time.Duration `env:"QUOTECARD_TIMEOUT" envDefault:"10s"`
	PixelRatio        float64       `env:"QUOTECARD_PIXEL_RATIO" envDefault:"2"`
	ExportDir         string        `env:"QUOTECARD_EXPORT_DIR" envDefault:"."`
	Listen            string        `env:"QUOTECARD_LISTEN" envDefault:":8080"`
	LogLevel          string        `env:"QUOTECARD_LOG_LEVEL" envDefault:"info"`
	TemplateOverrides string        `env:"QUOTECARD_TEMPLATE_OVERRIDES"`
	ThemeVariant      string        `env:"QUOTECARD_THEME_VARIANT"`
	ChromePath        string        `env:"QUOTECARD_CHROME_PATH"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// BindFlags registers flags whose defaults are the current values, so
// parsing the flag set overrides only what the user passed.
func (c *Config) BindFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.BackendURL, "backend", c.BackendURL, "quote API base URL")
	flagSet.DurationVar(&c.Timeout, "timeout", c.Timeout, "quote API request timeout")
	flagSet.Float64Var(&c.PixelRatio, "pixel-ratio", c.PixelRatio, "export pixel density multiplier")
	flagSet.StringVar(&c.ExportDir, "out", c.ExportDir, "directory receiving exported images")
	flagSet.StringVar(&c.Listen, "listen", c.Listen, "HTTP listen address for serve")
	flagSet.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	flagSet.StringVar(&c.TemplateOverrides, "overrides", c.TemplateOverrides, "YAML or JSON file with template token overrides")
	flagSet.StringVar(&c.ThemeVariant, "theme", c.ThemeVariant, `theme variant ("" or "dark")`)
	flagSet.StringVar(&c.ChromePath, "chrome", c.ChromePath, "Chrome/Chromium executable used for export")
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend URL %q must be absolute", c.BackendURL))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.PixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("pixel ratio must be positive, got %g", c.PixelRatio))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Logger builds a text logger on w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
