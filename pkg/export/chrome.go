package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// CardSelector is the node captured from export documents.
const CardSelector = "#quote-card"

// ChromeOption configures the headless Chrome capturer.
type ChromeOption func(*ChromeCapturer)

// WithExecPath points at a specific Chrome/Chromium binary.
func WithExecPath(path string) ChromeOption {
	return func(c *ChromeCapturer) {
		c.execPath = strings.TrimSpace(path)
	}
}

// WithSelector overrides the captured node selector.
func WithSelector(selector string) ChromeOption {
	return func(c *ChromeCapturer) {
		if s := strings.TrimSpace(selector); s != "" {
			c.selector = s
		}
	}
}

// ChromeCapturer screenshots the card node with a headless browser. Each
// capture starts its own browser process.
type ChromeCapturer struct {
	execPath string
	selector string
}

var _ Capturer = (*ChromeCapturer)(nil)

// NewChromeCapturer builds a capturer using the system Chrome unless
// WithExecPath says otherwise.
func NewChromeCapturer(options ...ChromeOption) *ChromeCapturer {
	c := &ChromeCapturer{selector: CardSelector}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Capture loads document into a blank page and screenshots the card node at
// opts.PixelRatio.
func (c *ChromeCapturer) Capture(ctx context.Context, document string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if c.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.execPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height), chromedp.EmulateScale(opts.PixelRatio)),
		chromedp.Navigate("about:blank"),
		setDocumentContent(document),
		chromedp.Screenshot(c.selector, &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("export: chrome capture: %w", err)
	}
	return buf, nil
}

func setDocumentContent(document string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, document).Do(ctx)
	})
}
