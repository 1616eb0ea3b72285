package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_ListOrder(t *testing.T) {
	r := MustNewRegistry()

	want := []Descriptor{
		{ID: "aurora", DisplayName: "Aurora"},
		{ID: "paper", DisplayName: "Paper"},
		{ID: "neon", DisplayName: "Neon"},
		{ID: "serif", DisplayName: "Serif"},
		{ID: "minimal", DisplayName: "Minimal"},
		{ID: "cosmic", DisplayName: "Cosmic Glass"},
	}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if r.Default().ID != "aurora" {
		t.Fatalf("default=%s", r.Default().ID)
	}
}

func TestRegistry_NextWrapsAround(t *testing.T) {
	r := MustNewRegistry()
	list := r.List()

	for _, start := range list {
		id := start.ID
		for i := 0; i < r.Len(); i++ {
			id = r.Next(id)
		}
		if id != start.ID {
			t.Fatalf("cycling %d times from %s ended at %s", r.Len(), start.ID, id)
		}
	}

	last := list[len(list)-1].ID
	if got := r.Next(last); got != list[0].ID {
		t.Fatalf("next after last = %s, want %s", got, list[0].ID)
	}
	if got := r.Next("aurora"); got != "paper" {
		t.Fatalf("next after aurora = %s", got)
	}
}

func TestRegistry_NextFromUnknownStartsAtFirst(t *testing.T) {
	r := MustNewRegistry()
	for _, id := range []string{"", "vaporwave", "AURORA"} {
		if got := r.Next(id); got != "aurora" {
			t.Fatalf("Next(%q) = %s, want aurora", id, got)
		}
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := MustNewRegistry()

	if v, ok := r.Resolve("neon"); !ok || v != Neon {
		t.Fatalf("Resolve(neon) = %s, %v", v, ok)
	}
	for _, id := range []string{"", " ", "unknown"} {
		if v, ok := r.Resolve(id); ok || v != DefaultVariant {
			t.Fatalf("Resolve(%q) = %s, %v", id, v, ok)
		}
	}
}

func TestRegistry_SelectMergesDarkVariant(t *testing.T) {
	r := MustNewRegistry()

	sel, err := r.Select("paper", ThemeVariantDark)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := rendererConfig(sel)
	if cfg.Theme != "paper" || cfg.Variant != ThemeVariantDark {
		t.Fatalf("unexpected selection: %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens[TokenBackground] != "#3a342b" {
		t.Fatalf("dark background not applied: %s", cfg.Tokens[TokenBackground])
	}
	if cfg.Tokens[TokenAccent] != "#e8dfcf" {
		t.Fatalf("base accent lost: %s", cfg.Tokens[TokenAccent])
	}
	if cfg.CSSVars["--qc-background"] != "#3a342b" {
		t.Fatalf("css vars not derived from tokens: %v", cfg.CSSVars)
	}
	if cfg.Partials["card"] != "cards/paper" {
		t.Fatalf("card partial=%s", cfg.Partials["card"])
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/quotecard.css" {
		t.Fatalf("stylesheet url=%s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset url=%s", got)
	}
}

func TestRegistry_SelectErrors(t *testing.T) {
	r := MustNewRegistry()
	if _, err := r.Select("nope", ""); err == nil {
		t.Fatal("expected error for unknown theme")
	}
	if _, err := r.Select("neon", "sepia"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestRegistry_Overrides(t *testing.T) {
	overrides, err := ParseOverrides([]byte(`
templates:
  neon:
    displayName: Neon Nights
    tokens:
      accent: "#facc15"
    dark:
      background: "#000000"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	r, err := NewRegistry(WithOverrides(overrides))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	d, ok := r.Lookup("neon")
	if !ok || d.DisplayName != "Neon Nights" {
		t.Fatalf("lookup neon = %+v, %v", d, ok)
	}
	if r.Index("neon") != 2 {
		t.Fatalf("overrides must not reorder, index=%d", r.Index("neon"))
	}
	if got := r.Tokens("neon", "")[TokenAccent]; got != "#facc15" {
		t.Fatalf("accent=%s", got)
	}
	if got := r.Tokens("neon", ThemeVariantDark)[TokenBackground]; got != "#000000" {
		t.Fatalf("dark background=%s", got)
	}
}

func TestRegistry_OverridesRejectUnknownTemplates(t *testing.T) {
	_, err := NewRegistry(WithOverrides(Overrides{Templates: map[string]TemplateOverride{
		"vaporwave": {DisplayName: "Vapor"},
	}}))
	if err == nil || !strings.Contains(err.Error(), "vaporwave") {
		t.Fatalf("expected unknown template error, got %v", err)
	}
}

func TestLoadOverrides_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "overrides.json")
	yamlPath := filepath.Join(dir, "overrides.yml")
	if err := os.WriteFile(jsonPath, []byte(`{"templates":{"serif":{"displayName":"Book"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte("templates:\n  serif:\n    displayName: Book\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		o, err := LoadOverrides(path)
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		if o.Templates["serif"].DisplayName != "Book" {
			t.Fatalf("%s: got %+v", path, o)
		}
	}

	if o, err := LoadOverrides(""); err != nil || len(o.Templates) != 0 {
		t.Fatalf("empty path should be a no-op, got %+v, %v", o, err)
	}
	if _, err := LoadOverrides(filepath.Join(dir, "overrides.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRegistry_ThemesProvider(t *testing.T) {
	r := MustNewRegistry()
	if r.Themes() == nil {
		t.Fatal("expected go-theme provider")
	}
	if diff := cmp.Diff([]string{ThemeVariantDark}, r.ThemeVariants()); diff != "" {
		t.Fatalf("theme variants (-want +got):\n%s", diff)
	}
}
