// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tables

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// cellGapEm is the horizontal gap, in multiples of the font size, that
// separates two cells on the same text row.
const cellGapEm = 1.0

// Rows reads each page as text rows and treats runs of consecutive rows
// that split into two or more cells as a table.
type Rows struct{}

// Name implements Extractor.
func (Rows) Name() string { return "row extractor" }

// Extract implements Extractor.
func (e Rows) Extract(ctx context.Context, path string) (found []Table, err error) {
	defer recoverPanic(e.Name(), &err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading rows on page %d: %w", i, err)
		}
		lines := make([][]pdf.Text, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, row.Content)
		}
		found = append(found, groupRows(lines)...)
	}
	return found, nil
}

// groupRows splits each line into cells and collects runs of at least two
// multi-cell lines into tables.
func groupRows(lines [][]pdf.Text) []Table {
	var (
		out     []Table
		current Table
	)
	flush := func() {
		if len(current) >= 2 {
			out = append(out, current)
		}
		current = nil
	}
	for _, line := range lines {
		cells := splitCells(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		current = append(current, cells)
	}
	flush()
	return out
}

// splitCells orders the glyph runs of one line left to right and starts a
// new cell wherever the gap to the previous run exceeds cellGapEm.
func splitCells(line []pdf.Text) []string {
	if len(line) == 0 {
		return nil
	}
	runs := make([]pdf.Text, len(line))
	copy(runs, line)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var (
		cells []string
		b     strings.Builder
		end   = runs[0].X
	)
	for i, t := range runs {
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		if i > 0 && t.X-end > size*cellGapEm {
			if c := normalize(b.String()); c != "" {
				cells = append(cells, c)
			}
			b.Reset()
		}
		b.WriteString(t.S)
		if e := t.X + t.W; e > end {
			end = e
		}
	}
	if c := normalize(b.String()); c != "" {
		cells = append(cells, c)
	}
	return cells
}
