// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/tsawler/tabula/docx"
	"github.com/tsawler/tabula/model"

	"github.com/pdiddy/docconv/internal/render"
	"github.com/pdiddy/docconv/pkg/types"
)

// Text layout, in points, matching a plain canvas dump of the file.
const (
	textMargin   = 50.0
	textLeading  = 14.0
	textFontSize = 12.0
	maxLineRunes = 100
)

// Flowing layout used for DOCX bodies.
const (
	bodyMargin   = 72.0
	bodyFontSize = 10.0
	bodyLeading  = 12.0
	bodySpacer   = 7.2
	emptyDocText = "(Empty document)"
)

// DocToPDF converts a DOCX, TXT, or HTML file to PDF, choosing the routine
// by the input extension.
func (c *Converter) DocToPDF(ctx context.Context, in, out string) error {
	switch e := ext(in); e {
	case ".docx":
		return c.DOCXToPDF(ctx, in, out)
	case ".txt":
		return c.TextToPDF(ctx, in, out)
	case ".html", ".htm":
		return c.HTMLToPDF(ctx, in, out)
	default:
		return &FormatError{Kind: "input", Ext: e}
	}
}

// TextToPDF draws every line of a text file at a fixed position on
// successive pages.
func (c *Converter) TextToPDF(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("converting TXT to PDF: %w", failed(err))
	}

	pdf := c.newPDF()
	pdf.SetFont("Helvetica", "", textFontSize)
	pdf.AddPage()
	_, height := pdf.GetPageSize()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	y := height - textMargin
	for _, line := range textLines(data) {
		if y < textMargin {
			pdf.AddPage()
			y = height - textMargin
		}
		pdf.Text(textMargin, height-y, tr(clip(strings.TrimRightFunc(line, unicode.IsSpace), maxLineRunes)))
		y -= textLeading
	}

	if err := writeFile(out, pdf.Output); err != nil {
		return fmt.Errorf("converting TXT to PDF: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s\n", in, out)
	return nil
}

// DOCXToPDF lays the paragraphs and headings of a DOCX file out as flowing
// text.
func (c *Converter) DOCXToPDF(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}

	r, err := docx.Open(in)
	if err != nil {
		return fmt.Errorf("converting DOCX to PDF: %w", failed(err))
	}
	defer r.Close()

	doc, err := r.Document()
	if err != nil {
		return fmt.Errorf("converting DOCX to PDF: %w", failed(err))
	}

	pdf := c.newPDF()
	pdf.SetMargins(bodyMargin, bodyMargin, bodyMargin)
	pdf.SetAutoPageBreak(true, bodyMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	n := 0
	for _, page := range doc.Pages {
		for _, el := range page.Elements {
			switch e := el.(type) {
			case *model.Heading:
				text := strings.TrimSpace(e.Text)
				if text == "" {
					continue
				}
				size := headingSize(e.Level)
				pdf.SetFont("Helvetica", "B", size)
				pdf.MultiCell(0, size*1.2, tr(text), "", "L", false)
			case model.TextElement:
				text := strings.TrimSpace(e.GetText())
				if text == "" {
					continue
				}
				pdf.SetFont("Helvetica", "", bodyFontSize)
				pdf.MultiCell(0, bodyLeading, tr(text), "", "L", false)
			default:
				continue
			}
			pdf.Ln(bodySpacer)
			n++
		}
	}
	if n == 0 {
		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.MultiCell(0, bodyLeading, emptyDocText, "", "L", false)
	}

	if err := writeFile(out, pdf.Output); err != nil {
		return fmt.Errorf("converting DOCX to PDF: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s\n", in, out)
	return nil
}

// HTMLToPDF prints an HTML file through the configured browser. When no
// browser can be started the file is laid out as plain text instead.
func (c *Converter) HTMLToPDF(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(in); err != nil {
		return fmt.Errorf("converting HTML to PDF: %w", failed(err))
	}

	err = writeFile(out, func(w io.Writer) error {
		return c.opts.HTML.PrintPDF(ctx, in, w)
	})
	if errors.Is(err, render.ErrUnavailable) {
		c.log.Warn("HTML renderer unavailable, falling back to plain text", "input", in, "error", err)
		return c.TextToPDF(ctx, in, out)
	}
	if err != nil {
		return fmt.Errorf("converting HTML to PDF: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s\n", in, out)
	return nil
}

func (c *Converter) newPDF() *fpdf.Fpdf {
	size := "Letter"
	if c.opts.Config.PageSize == types.PageA4 {
		size = "A4"
	}
	pdf := fpdf.New("P", "pt", size, "")
	pdf.SetCreator("docconv", true)
	return pdf
}

func headingSize(level int) float64 {
	switch level {
	case 1:
		return 18
	case 2:
		return 15
	case 3:
		return 13
	default:
		return 11
	}
}

// textLines decodes data as UTF-8, dropping invalid bytes, and splits it on
// any newline convention. A trailing newline does not start another line.
func textLines(data []byte) []string {
	s := strings.ToValidUTF8(string(data), "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
