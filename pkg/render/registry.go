package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Descriptor names a registered template for selection controls.
type Descriptor struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Registry holds the fixed, ordered set of card templates. Registration
// order defines the successor relation used when cycling, and the first
// entry is the default. A Registry is immutable after construction.
type Registry struct {
	order     []Variant
	names     map[Variant]string
	manifests map[Variant]*theme.Manifest
	provider  theme.ThemeProvider
}

// RegistryOption customises registry construction.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	overrides Overrides
}

// WithOverrides applies display name and token overrides on top of the
// built-in manifests.
func WithOverrides(overrides Overrides) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.overrides = overrides
	}
}

var _ theme.ThemeSelector = (*Registry)(nil)

// NewRegistry builds the registry of built-in templates. Each template is
// registered as a go-theme manifest so callers can reuse the provider.
func NewRegistry(options ...RegistryOption) (*Registry, error) {
	cfg := registryConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	defs := builtinVariants()
	known := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		known[string(def.id)] = struct{}{}
	}
	if unknown := cfg.overrides.unknownTemplates(known); len(unknown) > 0 {
		return nil, fmt.Errorf("render: overrides reference unknown templates: %s", strings.Join(unknown, ", "))
	}

	provider := theme.NewRegistry()
	r := &Registry{
		order:     make([]Variant, 0, len(defs)),
		names:     make(map[Variant]string, len(defs)),
		manifests: make(map[Variant]*theme.Manifest, len(defs)),
	}
	for _, def := range defs {
		if _, exists := r.names[def.id]; exists {
			return nil, fmt.Errorf("render: template %q already registered", def.id)
		}
		manifest := def.manifest()
		name := def.name
		if override, ok := cfg.overrides.Templates[string(def.id)]; ok {
			name = override.apply(manifest, name)
		}
		if err := provider.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", def.id, err)
		}
		r.order = append(r.order, def.id)
		r.names[def.id] = name
		r.manifests[def.id] = manifest
	}
	r.provider = provider
	return r, nil
}

// MustNewRegistry panics on construction failure. Useful for init-time wiring.
func MustNewRegistry(options ...RegistryOption) *Registry {
	r, err := NewRegistry(options...)
	if err != nil {
		panic(err)
	}
	return r
}

// List returns the templates in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.descriptor(id))
	}
	return out
}

// Len reports how many templates are registered.
func (r *Registry) Len() int {
	return len(r.order)
}

// Default returns the primary template.
func (r *Registry) Default() Descriptor {
	return r.descriptor(r.order[0])
}

// Lookup finds a template by exact identifier.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	v := Variant(id)
	if _, ok := r.names[v]; !ok {
		return Descriptor{}, false
	}
	return r.descriptor(v), true
}

// Has reports whether id names a registered template.
func (r *Registry) Has(id string) bool {
	_, ok := r.names[Variant(id)]
	return ok
}

// Resolve maps id to the variant that will render it. The boolean is false
// when id is empty or unknown and the default variant was substituted.
func (r *Registry) Resolve(id string) (Variant, bool) {
	v := Variant(id)
	if _, ok := r.names[v]; ok {
		return v, true
	}
	return r.order[0], false
}

// Next returns the identifier following id, wrapping from the last entry to
// the first. An unknown id is treated as positioned before the first entry.
func (r *Registry) Next(id string) string {
	idx := r.indexOf(Variant(id))
	return string(r.order[(idx+1)%len(r.order)])
}

// Index returns the position of id in registration order, or -1.
func (r *Registry) Index(id string) int {
	return r.indexOf(Variant(id))
}

// Themes exposes the go-theme provider holding one manifest per template.
func (r *Registry) Themes() theme.ThemeProvider {
	return r.provider
}

// Tokens returns the resolved design tokens for id under the given theme
// variant ("" for the base look). Unknown ids resolve to the default.
func (r *Registry) Tokens(id, themeVariant string) map[string]string {
	v, _ := r.Resolve(id)
	manifest := r.manifests[v]
	tokens := copyStringMap(manifest.Tokens)
	if tokens == nil {
		tokens = make(map[string]string)
	}
	if variant, ok := manifest.Variants[themeVariant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return tokens
}

// Select implements theme.ThemeSelector over the registered card manifests.
// An empty variant selects the base look.
func (r *Registry) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest, ok := r.manifests[Variant(name)]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// ThemeVariants lists the variant names declared by the default manifest.
func (r *Registry) ThemeVariants() []string {
	manifest := r.manifests[r.order[0]]
	out := make([]string, 0, len(manifest.Variants))
	for name := range manifest.Variants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) descriptor(v Variant) Descriptor {
	return Descriptor{ID: string(v), DisplayName: r.names[v]}
}

func (r *Registry) indexOf(v Variant) int {
	for i, candidate := range r.order {
		if candidate == v {
			return i
		}
	}
	return -1
}
