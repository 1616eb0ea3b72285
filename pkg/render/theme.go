package render

import (
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const cssVarPrefix = "--qc-"

// rendererConfig flattens a selection into the renderer-facing view: base
// tokens and partials overlaid with the selected variant, CSS custom
// properties derived from the tokens, and an asset resolver.
func rendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest

	tokens := copyStringMap(manifest.Tokens)
	if tokens == nil {
		tokens = make(map[string]string)
	}
	partials := copyStringMap(manifest.Templates)
	if partials == nil {
		partials = make(map[string]string)
	}
	files := copyStringMap(manifest.Assets.Files)
	if files == nil {
		files = make(map[string]string)
	}
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[sel.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		for key, value := range variant.Templates {
			partials[key] = value
		}
		for key, value := range variant.Assets.Files {
			files[key] = value
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars[cssVarPrefix+key] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(name string) string {
			file, ok := files[name]
			if !ok {
				return ""
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

// cssVarsStyle renders CSS custom properties as a deterministic inline style.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}
