// Package testsupport holds helpers shared by package tests: diffing,
// template output capture, PNG fixtures and scripted collaborators.
package testsupport

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-quotecard/pkg/quote"
)

// Diff returns a go-cmp diff string, empty when want and got are equal.
func Diff(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

// PNG returns a small valid PNG image.
func PNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{R: 99, G: 102, B: 241, A: 255})
		img.Set(x, 1, color.RGBA{R: 236, G: 72, B: 153, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// SourceResult is one scripted response of a StubSource.
type SourceResult struct {
	Quote quote.Quote
	Err   error
	Panic any
}

// StubSource is a quote.Source replaying scripted results and recording
// the tags it was asked for. The last result repeats once the script runs
// out.
type StubSource struct {
	mu      sync.Mutex
	results []SourceResult
	calls   []string
	// Hook runs before each result is returned, outside the lock.
	Hook func(ctx context.Context, tag string)
}

var _ quote.Source = (*StubSource)(nil)

// NewStubSource builds a StubSource from results.
func NewStubSource(results ...SourceResult) *StubSource {
	return &StubSource{results: results}
}

// Random implements quote.Source.
func (s *StubSource) Random(ctx context.Context, tag string) (quote.Quote, error) {
	s.mu.Lock()
	s.calls = append(s.calls, tag)
	var result SourceResult
	if len(s.results) > 0 {
		result = s.results[0]
		if len(s.results) > 1 {
			s.results = s.results[1:]
		}
	}
	hook := s.Hook
	s.mu.Unlock()

	if hook != nil {
		hook(ctx, tag)
	}
	if result.Panic != nil {
		panic(result.Panic)
	}
	return result.Quote, result.Err
}

// Calls returns the tags requested so far.
func (s *StubSource) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}
