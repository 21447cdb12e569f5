// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fumiama/go-docx"
)

const (
	monoFont    = "Courier New"
	bulletGlyph = "• "
)

// docxWriter accumulates paragraphs for a DOCX output. The default theme
// has no heading or list styles, so headings carry their style id for
// readers and explicit run formatting for display.
type docxWriter struct {
	doc        *docx.Docx
	paragraphs int
}

func newDocxWriter() *docxWriter {
	return &docxWriter{doc: docx.New().WithDefaultTheme()}
}

func (d *docxWriter) heading(text string, level int) {
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}
	p := d.doc.AddParagraph().Style("Heading" + strconv.Itoa(level))
	p.AddText(text).Bold().Size(headingHalfPoints(level))
	d.paragraphs++
}

func (d *docxWriter) body(text string) {
	d.doc.AddParagraph().AddText(text)
	d.paragraphs++
}

func (d *docxWriter) bullet(text string) {
	d.doc.AddParagraph().Style("ListBullet").AddText(bulletGlyph + text)
	d.paragraphs++
}

func (d *docxWriter) mono(text string) {
	d.doc.AddParagraph().Style("NoSpacing").AddText(text).Font(monoFont, monoFont, monoFont, "default")
	d.paragraphs++
}

func (d *docxWriter) pageBreak() {
	d.doc.AddParagraph().AddPageBreaks()
}

// table writes rows as a bordered table sized to the widest row.
func (d *docxWriter) table(rows [][]string) {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if len(rows) == 0 || cols == 0 {
		return
	}
	tbl := d.doc.AddTable(len(rows), cols, 0, nil)
	for i, r := range rows {
		for j := 0; j < cols; j++ {
			text := ""
			if j < len(r) {
				text = r[j]
			}
			tbl.TableRows[i].TableCells[j].AddParagraph().AddText(text)
		}
	}
	d.paragraphs++
}

func (d *docxWriter) save(path string) error {
	return writeFile(path, func(w io.Writer) error {
		if _, err := d.doc.WriteTo(w); err != nil {
			return fmt.Errorf("writing DOCX: %w", err)
		}
		return nil
	})
}

// headingHalfPoints returns the run size, in half points, for a heading level.
func headingHalfPoints(level int) string {
	switch level {
	case 1:
		return "32"
	case 2:
		return "28"
	case 3:
		return "26"
	default:
		return "24"
	}
}
