package quote

import "context"

const (
	// FallbackText is shown when the backend cannot produce a quote.
	FallbackText = "Backend not reachable. Showing a demo quote."
	// FallbackAuthor attributes the fallback quote.
	FallbackAuthor = "System"
)

// Quote is a text/author pair, optionally tagged with the template the
// backend suggests for it. Empty Author and Template mean absent.
type Quote struct {
	Text     string `json:"text"`
	Author   string `json:"author,omitempty"`
	Template string `json:"template,omitempty"`
}

// Fallback returns the demo quote substituted for failed fetches.
func Fallback() Quote {
	return Quote{Text: FallbackText, Author: FallbackAuthor}
}

// Source produces random quotes, optionally narrowed to a tag.
type Source interface {
	Random(ctx context.Context, tag string) (Quote, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context, tag string) (Quote, error)

// Random implements Source.
func (f SourceFunc) Random(ctx context.Context, tag string) (Quote, error) {
	return f(ctx, tag)
}
