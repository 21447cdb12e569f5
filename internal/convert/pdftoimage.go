// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/docconv/internal/render"
)

var errNoPages = fmt.Errorf("%w: no pages found in PDF", ErrConversion)

// ImageResult lists the image files written for one PDF, in page order.
type ImageResult struct {
	Paths []string
}

// ParsePage parses a 1-based page argument. An empty string selects every
// page and yields 0.
func ParsePage(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: invalid page %q", ErrConversion, s)
	}
	return n, nil
}

// PDFToImages rasterises the pages of a PDF into outDir, one file per page.
// page selects a single 1-based page; 0 selects every page. File names are
// <stem>_<unix-ms>_page<N>.<ext> with the timestamp taken once per call.
func (c *Converter) PDFToImages(ctx context.Context, in, outDir, format string, page int) (res ImageResult, err error) {
	defer func() {
		if err != nil {
			for _, p := range res.Paths {
				os.Remove(p)
			}
			res.Paths = nil
		}
	}()
	defer recoverTo(&err)

	f, err := render.LookupFormat(format)
	if err != nil {
		return res, &FormatError{Kind: "image", Ext: format}
	}
	if page < 0 {
		return res, fmt.Errorf("%w: invalid page %d", ErrConversion, page)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	fmt.Fprintf(c.opts.Stdout, "Converting PDF to %s...\n", format)

	doc, err := c.opts.Open(in)
	if err != nil {
		return res, fmt.Errorf("converting PDF to images: %w", failed(err))
	}
	defer doc.Close()

	pages, err := selectPages(doc.NumPage(), page)
	if err != nil {
		return res, err
	}
	if len(pages) == 0 {
		fmt.Fprintln(c.opts.Stderr, "No pages found in PDF")
		return res, errNoPages
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, fmt.Errorf("converting PDF to images: %w", failed(err))
	}

	base := stem(in)
	stamp := c.opts.Now().UnixMilli()
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		img, err := doc.Image(p-1, c.opts.Config.DPI)
		if err != nil {
			return res, fmt.Errorf("converting PDF to images: %w", failed(err))
		}
		path := filepath.Join(outDir, fmt.Sprintf("%s_%d_page%d.%s", base, stamp, p, f.Ext))
		if err := writeFile(path, func(w io.Writer) error { return f.Encode(w, img) }); err != nil {
			return res, fmt.Errorf("converting PDF to images: %w", failed(err))
		}
		res.Paths = append(res.Paths, path)
		fmt.Fprintf(c.opts.Stdout, "Saved: %s\n", path)
	}

	fmt.Fprintf(c.opts.Stdout, "Successfully converted %d page(s)\n", len(res.Paths))
	return res, nil
}

// selectPages returns the 1-based pages to render out of n.
func selectPages(n, page int) ([]int, error) {
	if page > 0 {
		if page > n {
			return nil, fmt.Errorf("%w: page %d out of range (document has %d pages)", ErrConversion, page, n)
		}
		return []int{page}, nil
	}
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages, nil
}
