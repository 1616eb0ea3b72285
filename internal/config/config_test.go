package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		BackendURL: "http://localhost:8000",
		Timeout:    10 * time.Second,
		PixelRatio: 2,
		ExportDir:  ".",
		Listen:     ":8080",
		LogLevel:   "info",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromValues(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"QUOTECARD_BACKEND_URL":        "https://quotes.example.com/v1",
		"QUOTECARD_TIMEOUT":            "3s",
		"QUOTECARD_PIXEL_RATIO":        "3",
		"QUOTECARD_EXPORT_DIR":         "/tmp/cards",
		"QUOTECARD_LOG_LEVEL":          "debug",
		"QUOTECARD_TEMPLATE_OVERRIDES": "overrides.yaml",
		"QUOTECARD_THEME_VARIANT":      "dark",
		"QUOTECARD_CHROME_PATH":        "/usr/bin/chromium",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "https://quotes.example.com/v1" || cfg.Timeout != 3*time.Second || cfg.PixelRatio != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.ThemeVariant != "dark" || cfg.ChromePath != "/usr/bin/chromium" || cfg.TemplateOverrides != "overrides.yaml" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadFromError(t *testing.T) {
	_, err := LoadFrom(map[string]string{"QUOTECARD_TIMEOUT": "soon"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "config: parse env:") {
		t.Fatalf("expected config prefix, got %v", err)
	}
}

func TestLoadReadsProcessEnv(t *testing.T) {
	t.Setenv("QUOTECARD_LISTEN", "127.0.0.1:9999")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9999" {
		t.Fatalf("expected listen override, got %q", cfg.Listen)
	}
}

func TestBindFlagsOverridesEnv(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"QUOTECARD_BACKEND_URL": "http://env:8000"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(flagSet)
	if err := flagSet.Parse([]string{"--pixel-ratio", "1.5", "--theme", "dark"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.BackendURL != "http://env:8000" {
		t.Fatalf("unset flag must keep env value, got %q", cfg.BackendURL)
	}
	if cfg.PixelRatio != 1.5 || cfg.ThemeVariant != "dark" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{BackendURL: "localhost", Timeout: 0, PixelRatio: -1, LogLevel: "loud"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"backend URL", "timeout", "pixel ratio", "log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: "warn"}.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Fatalf("unexpected log output %q", out)
	}

	if level, err := ParseLevel("DEBUG"); err != nil || level != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v %v", level, err)
	}
}
