// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
)

// PDFToDOCX rebuilds the layout tabula recovers from a PDF (headings,
// paragraphs, lists, and tables) as a DOCX document with one page break
// between source pages.
func (c *Converter) PDFToDOCX(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, warnings, err := tabula.Open(in).Document()
	if err != nil {
		return fmt.Errorf("converting PDF to DOCX: %w", failed(err))
	}
	for _, w := range warnings {
		c.log.Debug("layout warning", "input", in, "warning", w)
	}

	w := newDocxWriter()
	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			w.pageBreak()
		}
		writeLayout(w, page.Elements)
	}

	if err := w.save(out); err != nil {
		return fmt.Errorf("converting PDF to DOCX: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s\n", in, out)
	return nil
}

func writeLayout(w *docxWriter, elements []model.Element) {
	for _, el := range elements {
		switch e := el.(type) {
		case *model.Heading:
			if text := strings.TrimSpace(e.Text); text != "" {
				w.heading(text, e.Level)
			}
		case *model.List:
			for _, item := range e.Items {
				if text := strings.TrimSpace(item.Text); text != "" {
					w.bullet(text)
				}
			}
		case *model.Table:
			rows := make([][]string, 0, len(e.Rows))
			for _, r := range e.Rows {
				cells := make([]string, len(r))
				for j, cell := range r {
					cells[j] = normalizeSpace(cell.Text)
				}
				rows = append(rows, cells)
			}
			w.table(rows)
		case model.TextElement:
			if text := strings.TrimSpace(e.GetText()); text != "" {
				w.body(text)
			}
		}
	}
}
