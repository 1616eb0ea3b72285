package render

import theme "github.com/goliatone/go-theme"

// Variant identifies one of the built-in card treatments. The set is closed:
// every Variant has a dispatch case in cardTemplate and in the terminal
// renderer, and anything else renders as DefaultVariant.
type Variant string

const (
	Aurora  Variant = "aurora"
	Paper   Variant = "paper"
	Neon    Variant = "neon"
	Serif   Variant = "serif"
	Minimal Variant = "minimal"
	Cosmic  Variant = "cosmic"
)

// DefaultVariant is the primary treatment used for unknown identifiers.
const DefaultVariant = Aurora

// ThemeVariantDark is the go-theme variant each card manifest declares.
const ThemeVariantDark = "dark"

const (
	// Token keys shared by every card manifest.
	TokenBackground = "background"
	TokenForeground = "foreground"
	TokenAccent     = "accent"
	TokenAuthor     = "author"
	TokenBorder     = "border"

	manifestVersion = "1.0.0"
	assetsPrefix    = "/assets"
	stylesheetAsset = "stylesheet"
	stylesheetName  = "quotecard.css"
)

type variantDef struct {
	id     Variant
	name   string
	tokens map[string]string
	dark   map[string]string
}

// builtinVariants lists the registered treatments in display order. The
// first entry is the default.
func builtinVariants() []variantDef {
	return []variantDef{
		{
			id:   Aurora,
			name: "Aurora",
			tokens: map[string]string{
				TokenBackground: "linear-gradient(135deg, #6366f1, #a855f7 50%, #ec4899)",
				TokenForeground: "#ffffff",
				TokenAccent:     "#f5d0fe",
				TokenAuthor:     "#f5f3ff",
				TokenBorder:     "#a855f7",
			},
			dark: map[string]string{
				TokenBackground: "linear-gradient(135deg, #312e81, #581c87 50%, #831843)",
			},
		},
		{
			id:   Paper,
			name: "Paper",
			tokens: map[string]string{
				TokenBackground: "#faf6ef",
				TokenForeground: "#2b2b2b",
				TokenAccent:     "#e8dfcf",
				TokenAuthor:     "#2b2b2b",
				TokenBorder:     "#e8dfcf",
			},
			dark: map[string]string{
				TokenBackground: "#3a342b",
				TokenForeground: "#f4ecdc",
				TokenAuthor:     "#f4ecdc",
			},
		},
		{
			id:   Neon,
			name: "Neon",
			tokens: map[string]string{
				TokenBackground: "#0b1020",
				TokenForeground: "#22d3ee",
				TokenAccent:     "#e879f9",
				TokenAuthor:     "#c7d2fe",
				TokenBorder:     "#4f46e5",
			},
			dark: map[string]string{
				TokenBackground: "#05070f",
			},
		},
		{
			id:   Serif,
			name: "Serif",
			tokens: map[string]string{
				TokenBackground: "#ffffff",
				TokenForeground: "#111827",
				TokenAccent:     "#d1d5db",
				TokenAuthor:     "#4b5563",
				TokenBorder:     "#e5e7eb",
			},
			dark: map[string]string{
				TokenBackground: "#111827",
				TokenForeground: "#f9fafb",
				TokenAuthor:     "#9ca3af",
			},
		},
		{
			id:   Minimal,
			name: "Minimal",
			tokens: map[string]string{
				TokenBackground: "#f9fafb",
				TokenForeground: "#111827",
				TokenAccent:     "#f3f4f6",
				TokenAuthor:     "#6b7280",
				TokenBorder:     "#f3f4f6",
			},
			dark: map[string]string{
				TokenBackground: "#18181b",
				TokenForeground: "#fafafa",
			},
		},
		{
			id:   Cosmic,
			name: "Cosmic Glass",
			tokens: map[string]string{
				TokenBackground: "rgba(255, 255, 255, 0.1)",
				TokenForeground: "#ffffff",
				TokenAccent:     "#e879f9",
				TokenAuthor:     "rgba(255, 255, 255, 0.9)",
				TokenBorder:     "rgba(255, 255, 255, 0.2)",
			},
			dark: map[string]string{
				TokenBackground: "rgba(15, 23, 42, 0.6)",
			},
		},
	}
}

func (d variantDef) manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    string(d.id),
		Version: manifestVersion,
		Tokens:  copyStringMap(d.tokens),
		Templates: map[string]string{
			"card": cardTemplate(d.id),
		},
		Assets: theme.Assets{
			Prefix: assetsPrefix,
			Files: map[string]string{
				stylesheetAsset: stylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			ThemeVariantDark: {
				Tokens: copyStringMap(d.dark),
			},
		},
	}
}

// cardTemplate dispatches a variant to its card template. Unknown variants
// get the default card.
func cardTemplate(v Variant) string {
	switch v {
	case Paper:
		return "cards/paper"
	case Neon:
		return "cards/neon"
	case Serif:
		return "cards/serif"
	case Minimal:
		return "cards/minimal"
	case Cosmic:
		return "cards/cosmic"
	case Aurora:
		return "cards/aurora"
	default:
		return "cards/aurora"
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
