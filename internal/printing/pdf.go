// Package printing converts composed power sheets to PDF with headless Chrome.
package printing

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single page render.
const DefaultTimeout = 60 * time.Second

// Error represents a failure printing one sheet.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("print error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("print error for %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures PDF output.
type Options struct {
	Timeout   time.Duration
	Landscape bool
	Logger    *zap.Logger
}

// DefaultOptions returns landscape printing with the default timeout.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		Landscape: true,
	}
}

// PDFPath returns the PDF path that sits next to an HTML sheet.
func PDFPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".pdf"
}

// FileURL returns the file:// URL Chrome should open for path.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// PrintToPDF renders the HTML file at htmlPath in a headless browser and writes
// the printed result to pdfPath. Requires Chrome/Chromium to be installed.
func PrintToPDF(ctx context.Context, htmlPath, pdfPath string, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	target, err := FileURL(htmlPath)
	if err != nil {
		return &Error{Path: htmlPath, Message: "failed to resolve sheet path", Cause: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("starting headless browser", zap.String("url", target))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(opts.Landscape).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return &Error{Path: htmlPath, Message: "browser printing failed", Cause: err}
	}

	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return &Error{Path: pdfPath, Message: "failed to write PDF", Cause: err}
	}

	logger.Debug("wrote PDF", zap.String("path", pdfPath), zap.Int("bytes", len(pdf)))
	return nil
}
