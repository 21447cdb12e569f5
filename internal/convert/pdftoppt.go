// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/docconv/internal/pptx"
	"github.com/pdiddy/docconv/internal/render"
)

// PDFToPPT renders every PDF page to a PNG and builds a 10in x 7.5in deck
// with one full-bleed picture slide per page.
func (c *Converter) PDFToPPT(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(c.opts.Stdout, "Converting PDF pages to images...")

	n, err := c.opts.PageCount(in)
	if err != nil {
		return fmt.Errorf("converting PDF to PPT: %w", failed(err))
	}
	doc, err := c.opts.Open(in)
	if err != nil {
		return fmt.Errorf("converting PDF to PPT: %w", failed(err))
	}
	defer doc.Close()

	if rendered := doc.NumPage(); rendered < n {
		c.log.Warn("page count mismatch", "input", in, "validated", n, "renderable", rendered)
		n = rendered
	}
	if n == 0 {
		fmt.Fprintln(c.opts.Stderr, "No pages found in PDF")
		return errNoPages
	}

	tmp, err := os.MkdirTemp("", "docconv-pptx-*")
	if err != nil {
		return fmt.Errorf("converting PDF to PPT: %w", failed(err))
	}
	defer os.RemoveAll(tmp)

	png, err := render.LookupFormat("png")
	if err != nil {
		return err
	}

	deck := pptx.New(pptx.DefaultWidth, pptx.DefaultHeight)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(c.opts.Stdout, "Processing page %d/%d...\n", i+1, n)

		img, err := doc.Image(i, c.opts.Config.DPI)
		if err != nil {
			return fmt.Errorf("converting PDF to PPT: %w", failed(err))
		}
		path := filepath.Join(tmp, fmt.Sprintf("page_%d.png", i))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("converting PDF to PPT: %w", failed(err))
		}
		err = png.Encode(f, img)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("converting PDF to PPT: %w", failed(err))
		}
		deck.AddPictureFile(path)
	}

	if err := writeFile(out, deck.Write); err != nil {
		return fmt.Errorf("converting PDF to PPT: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s (%d slides)\n", in, out, deck.Len())
	return nil
}
