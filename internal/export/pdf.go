package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/cv-builder/internal/fetch"
)

// US Letter, in inches.
const (
	letterWidth  = 8.5
	letterHeight = 11.0
)

// PDFOptions configures headless Chrome printing.
type PDFOptions struct {
	// ChromePath overrides the browser binary (CHROME_PATH).
	ChromePath string
	Timeout    time.Duration
}

// Error wraps a failed export.
type Error struct {
	Format  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s export failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s export failed: %s", e.Format, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// PDF prints a full HTML page to PDF. The page's own @page rules decide
// margins; Letter is the fallback paper size.
func PDF(ctx context.Context, html string, opts PDFOptions) ([]byte, error) {
	if html == "" {
		return nil, &Error{Format: "pdf", Message: "document is empty"}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	browserCtx, cancel := fetch.NewBrowserContext(ctx, fetch.BrowserOptions{ExecPath: opts.ChromePath, Timeout: timeout})
	defer cancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(letterWidth).
				WithPaperHeight(letterHeight).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &Error{Format: "pdf", Message: "headless print failed", Cause: err}
	}
	return buf, nil
}
