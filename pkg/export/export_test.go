package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-quotecard/pkg/render"
	"github.com/goliatone/go-quotecard/pkg/testsupport"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.NewRenderer(render.MustNewRegistry())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestExporter_DeliversPNG(t *testing.T) {
	renderer := newRenderer(t)
	card, err := renderer.Render("neon", "Glow", "Tesla")
	if err != nil {
		t.Fatal(err)
	}

	var gotDoc string
	var gotOpts Options
	capturer := CapturerFunc(func(_ context.Context, doc string, opts Options) ([]byte, error) {
		gotDoc = doc
		gotOpts = opts
		return testsupport.PNG(t), nil
	})
	exporter, err := NewExporter(renderer, capturer)
	if err != nil {
		t.Fatal(err)
	}

	buf := &Buffer{}
	if err := exporter.Export(context.Background(), card, buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if buf.Filename != "quote.png" {
		t.Fatalf("filename=%s", buf.Filename)
	}
	if len(buf.Data) == 0 {
		t.Fatal("no data delivered")
	}
	if !strings.Contains(gotDoc, `id="quote-card"`) || !strings.Contains(gotDoc, "Glow") {
		t.Fatalf("capturer received unexpected document:\n%s", gotDoc)
	}
	if gotOpts.PixelRatio != DefaultPixelRatio {
		t.Fatalf("pixel ratio=%v", gotOpts.PixelRatio)
	}
}

func TestExporter_PixelRatioOption(t *testing.T) {
	exporter, err := NewExporter(newRenderer(t), CapturerFunc(func(context.Context, string, Options) ([]byte, error) {
		return nil, nil
	}), WithPixelRatio(3))
	if err != nil {
		t.Fatal(err)
	}
	if got := exporter.Options(); got.PixelRatio != 3 || got.Width != DefaultViewportWidth {
		t.Fatalf("options=%+v", got)
	}
}

func TestExporter_Failures(t *testing.T) {
	renderer := newRenderer(t)
	card, err := renderer.Render("aurora", "x", "y")
	if err != nil {
		t.Fatal(err)
	}
	captureErr := errors.New("browser crashed")

	cases := []struct {
		name    string
		capture CapturerFunc
		target  error
	}{
		{
			name: "capture error",
			capture: func(context.Context, string, Options) ([]byte, error) {
				return nil, captureErr
			},
			target: captureErr,
		},
		{
			name: "empty image",
			capture: func(context.Context, string, Options) ([]byte, error) {
				return nil, nil
			},
			target: ErrEmptyImage,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exporter, err := NewExporter(renderer, tc.capture)
			if err != nil {
				t.Fatal(err)
			}
			buf := &Buffer{}
			err = exporter.Export(context.Background(), card, buf)
			if !errors.Is(err, tc.target) {
				t.Fatalf("want %v, got %v", tc.target, err)
			}
			if len(buf.Data) != 0 {
				t.Fatal("nothing should be delivered on failure")
			}
		})
	}

	t.Run("not a png", func(t *testing.T) {
		exporter, err := NewExporter(renderer, CapturerFunc(func(context.Context, string, Options) ([]byte, error) {
			return []byte("GIF89a"), nil
		}))
		if err != nil {
			t.Fatal(err)
		}
		if err := exporter.Export(context.Background(), card, &Buffer{}); err == nil {
			t.Fatal("expected error for non-PNG capture")
		}
	})
}

func TestNewExporter_RequiresCollaborators(t *testing.T) {
	if _, err := NewExporter(nil, CapturerFunc(nil)); err == nil {
		t.Fatal("expected error without document renderer")
	}
	if _, err := NewExporter(newRenderer(t), nil); err == nil {
		t.Fatal("expected error without capturer")
	}
}

func TestDirDownloader_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := &DirDownloader{Dir: dir}
	if err := d.Download(context.Background(), Filename, []byte("png")); err != nil {
		t.Fatalf("download: %v", err)
	}
	want := filepath.Join(dir, Filename)
	if d.LastPath() != want {
		t.Fatalf("last path=%s", d.LastPath())
	}
	data, err := os.ReadFile(want)
	if err != nil || string(data) != "png" {
		t.Fatalf("read back %q, %v", data, err)
	}
}

func TestNewChromeCapturer_Options(t *testing.T) {
	c := NewChromeCapturer(WithExecPath(" /usr/bin/chromium "), WithSelector(""))
	if c.execPath != "/usr/bin/chromium" {
		t.Fatalf("exec path=%q", c.execPath)
	}
	if c.selector != CardSelector {
		t.Fatalf("selector=%q", c.selector)
	}
}
