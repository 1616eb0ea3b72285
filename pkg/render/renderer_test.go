package render

import (
	"strings"
	"testing"
)

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(MustNewRegistry(), opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_KnownTemplatesDoNotFallBack(t *testing.T) {
	r := newTestRenderer(t)

	for _, d := range r.Registry().List() {
		card, err := r.Render(d.ID, "Stay hungry.", "Steve")
		if err != nil {
			t.Fatalf("render %s: %v", d.ID, err)
		}
		if card.Fallback {
			t.Fatalf("%s fell back to default", d.ID)
		}
		if card.Template != d {
			t.Fatalf("%s rendered as %+v", d.ID, card.Template)
		}
		if !strings.Contains(card.HTML, `data-template="`+d.ID+`"`) {
			t.Fatalf("%s markup missing template marker: %s", d.ID, card.HTML)
		}
	}
}

func TestRender_UnknownTemplatesMatchDefault(t *testing.T) {
	r := newTestRenderer(t)

	want, err := r.Render(r.Registry().Default().ID, "Stay hungry.", "Steve")
	if err != nil {
		t.Fatalf("render default: %v", err)
	}
	for _, id := range []string{"", "unknown", "NEON", " neon"} {
		got, err := r.Render(id, "Stay hungry.", "Steve")
		if err != nil {
			t.Fatalf("render %q: %v", id, err)
		}
		if !got.Fallback {
			t.Fatalf("%q should be marked as fallback", id)
		}
		if got.Requested != id {
			t.Fatalf("requested=%q want %q", got.Requested, id)
		}
		if got.HTML != want.HTML || got.Style != want.Style || got.Template != want.Template {
			t.Fatalf("%q rendered differently from the default\nwant: %s\n got: %s", id, want.HTML, got.HTML)
		}
	}
}

func TestRender_AuthorPlaceholder(t *testing.T) {
	r := newTestRenderer(t)

	for _, d := range r.Registry().List() {
		for _, author := range []string{"", "   "} {
			card, err := r.Render(d.ID, "Anonymous wisdom", author)
			if err != nil {
				t.Fatalf("render %s: %v", d.ID, err)
			}
			if card.Author != UnknownAuthor {
				t.Fatalf("author=%q", card.Author)
			}
			if !strings.Contains(card.HTML, "Unknown") {
				t.Fatalf("%s markup missing placeholder: %s", d.ID, card.HTML)
			}
		}
	}
}

func TestRender_BlockquotesTextAndAttributesAuthor(t *testing.T) {
	r := newTestRenderer(t)

	for _, d := range r.Registry().List() {
		card, err := r.Render(d.ID, "Less is more", "Mies")
		if err != nil {
			t.Fatalf("render %s: %v", d.ID, err)
		}
		if !strings.Contains(card.HTML, "<blockquote") || !strings.Contains(card.HTML, "“Less is more”") {
			t.Fatalf("%s: text not block-quoted: %s", d.ID, card.HTML)
		}
		if !strings.Contains(card.HTML, "<figcaption") || !strings.Contains(card.HTML, "qc-right") {
			t.Fatalf("%s: author not right-aligned: %s", d.ID, card.HTML)
		}
		if strings.Index(card.HTML, "Mies") < strings.Index(card.HTML, "Less is more") {
			t.Fatalf("%s: author should follow the text", d.ID)
		}
	}
}

func TestRender_EscapesQuoteText(t *testing.T) {
	r := newTestRenderer(t)

	card, err := r.Render("neon", `<script>alert(1)</script>`, `<img src=x onerror=alert(1)>`)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(card.HTML, "<script") || strings.Contains(card.HTML, "<img") {
		t.Fatalf("markup not neutralised: %s", card.HTML)
	}
}

func TestRender_ThemeVariant(t *testing.T) {
	base := newTestRenderer(t)
	dark := newTestRenderer(t, WithThemeVariant(ThemeVariantDark))

	lightCard, err := base.Render("serif", "t", "a")
	if err != nil {
		t.Fatal(err)
	}
	darkCard, err := dark.Render("serif", "t", "a")
	if err != nil {
		t.Fatal(err)
	}
	if lightCard.Style == darkCard.Style {
		t.Fatal("dark variant should change the card style")
	}
	if !strings.Contains(darkCard.Style, "--qc-background: #111827;") {
		t.Fatalf("style=%s", darkCard.Style)
	}
	if darkCard.Theme.Variant != ThemeVariantDark {
		t.Fatalf("variant=%s", darkCard.Theme.Variant)
	}
}

func TestNewRenderer_RejectsUnknownThemeVariant(t *testing.T) {
	if _, err := NewRenderer(MustNewRegistry(), WithThemeVariant("sepia")); err == nil {
		t.Fatal("expected error for unknown theme variant")
	}
	if _, err := NewRenderer(nil); err == nil {
		t.Fatal("expected error for nil registry")
	}
}

func TestDocument_WrapsCard(t *testing.T) {
	r := newTestRenderer(t)

	card, err := r.Render("cosmic", "Ad astra", "Seneca")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := r.Document(card)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", `id="quote-card"`, `data-template="cosmic"`, "qc-card", "cosmic glass", "--qc-background"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestCSSVarsStyleIsSorted(t *testing.T) {
	got := cssVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	if got != "--a: 1; --b: 2;" {
		t.Fatalf("style=%q", got)
	}
	if cssVarsStyle(nil) != "" {
		t.Fatal("expected empty style")
	}
}

func TestSanitizeCard_KeepsCardMarkupAndStripsScripts(t *testing.T) {
	raw := `<figure class="qc-card qc-neon" data-template="neon" onclick="steal()">` +
		`<script>alert(1)</script>` +
		`<blockquote class="qc-text" style="color:red">hi</blockquote>` +
		`<span class="qc-rule" aria-hidden="true"></span>` +
		`<a href="javascript:alert(1)">x</a>` +
		`</figure>`

	got := sanitizeCard(raw)

	for _, want := range []string{
		`<figure class="qc-card qc-neon" data-template="neon">`,
		`<blockquote class="qc-text">hi</blockquote>`,
		`aria-hidden="true"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in sanitized markup, got %q", want, got)
		}
	}
	for _, banned := range []string{"<script", "onclick", "javascript:", "<a ", "style="} {
		if strings.Contains(got, banned) {
			t.Fatalf("expected %q to be stripped, got %q", banned, got)
		}
	}
}
