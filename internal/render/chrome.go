// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render drives the rendering engines docconv delegates to: a
// headless Chrome for HTML printing and MuPDF for PDF page rasterisation.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrUnavailable reports that a renderer could not be started at all, as
// opposed to failing while it worked on a document.
var ErrUnavailable = errors.New("renderer unavailable")

// Chrome prints HTML files to PDF through a headless Chrome or Chromium.
type Chrome struct {
	// Bin is the browser executable. Empty means look it up.
	Bin string

	// Timeout bounds loading and printing one page. Zero means no limit
	// beyond the caller's context.
	Timeout time.Duration

	Logger *slog.Logger
}

func (c *Chrome) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// PrintPDF loads the HTML file at htmlPath and writes its print-to-PDF
// output, backgrounds included, to w. Errors wrapping ErrUnavailable mean
// the browser never came up.
func (c *Chrome) PrintPDF(ctx context.Context, htmlPath string, w io.Writer) error {
	bin := c.Bin
	if bin == "" {
		found, ok := launcher.LookPath()
		if !ok {
			return fmt.Errorf("%w: no Chrome or Chromium binary found", ErrUnavailable)
		}
		bin = found
	}

	l := launcher.New().Context(ctx).Bin(bin).Headless(true).Leakless(false)
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: launching %s: %v", ErrUnavailable, bin, err)
	}
	defer l.Cleanup()
	defer l.Kill()
	c.logger().Debug("browser launched", "bin", bin, "control_url", controlURL)

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("%w: connecting to %s: %v", ErrUnavailable, bin, err)
	}
	defer browser.Close()

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", htmlPath, err)
	}
	fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()

	page, err := browser.Page(proto.TargetCreateTarget{URL: fileURL})
	if err != nil {
		return fmt.Errorf("opening %s: %w", fileURL, err)
	}
	if c.Timeout > 0 {
		page = page.Timeout(c.Timeout)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("loading %s: %w", htmlPath, err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return fmt.Errorf("printing %s: %w", htmlPath, err)
	}
	if _, err := io.Copy(w, stream); err != nil {
		return fmt.Errorf("reading PDF stream for %s: %w", htmlPath, err)
	}
	return nil
}
