package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// Overrides adjusts the look of registered templates without changing their
// identifiers or order.
//
//	templates:
//	  neon:
//	    displayName: Neon Nights
//	    tokens:
//	      accent: "#facc15"
//	    dark:
//	      background: "#000000"
type Overrides struct {
	Templates map[string]TemplateOverride `json:"templates" yaml:"templates"`
}

// TemplateOverride holds the per-template adjustments.
type TemplateOverride struct {
	DisplayName string            `json:"displayName" yaml:"displayName"`
	Tokens      map[string]string `json:"tokens" yaml:"tokens"`
	Dark        map[string]string `json:"dark" yaml:"dark"`
}

// LoadOverrides reads an overrides document from disk. JSON and YAML are
// accepted; the extension picks the decoder.
func LoadOverrides(path string) (Overrides, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("render: read overrides: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var doc Overrides
		if err := json.Unmarshal(data, &doc); err != nil {
			return Overrides{}, fmt.Errorf("render: decode overrides %s: %w", path, err)
		}
		return doc, nil
	case ".yaml", ".yml", "":
		return ParseOverrides(data)
	default:
		return Overrides{}, fmt.Errorf("render: unsupported overrides format %q", filepath.Ext(path))
	}
}

// ParseOverrides decodes a YAML (or JSON) overrides document.
func ParseOverrides(data []byte) (Overrides, error) {
	var doc Overrides
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Overrides{}, fmt.Errorf("render: decode overrides: %w", err)
	}
	return doc, nil
}

func (o Overrides) unknownTemplates(known map[string]struct{}) []string {
	var out []string
	for id := range o.Templates {
		if _, ok := known[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// apply merges the override into manifest and returns the display name.
func (t TemplateOverride) apply(manifest *theme.Manifest, name string) string {
	if len(t.Tokens) > 0 {
		if manifest.Tokens == nil {
			manifest.Tokens = make(map[string]string, len(t.Tokens))
		}
		for key, value := range t.Tokens {
			manifest.Tokens[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	if len(t.Dark) > 0 {
		if manifest.Variants == nil {
			manifest.Variants = make(map[string]theme.Variant)
		}
		dark := manifest.Variants[ThemeVariantDark]
		if dark.Tokens == nil {
			dark.Tokens = make(map[string]string, len(t.Dark))
		}
		for key, value := range t.Dark {
			dark.Tokens[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		manifest.Variants[ThemeVariantDark] = dark
	}
	if display := strings.TrimSpace(t.DisplayName); display != "" {
		return display
	}
	return name
}
