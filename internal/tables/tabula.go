// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tables

import (
	"context"
	"fmt"

	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"
	tabtables "github.com/tsawler/tabula/tables"
)

// Geometric detects tables by the spatial alignment of text fragments,
// using tabula's geometric detector on every page.
type Geometric struct{}

// Name implements Extractor.
func (Geometric) Name() string { return "tabula" }

// Extract implements Extractor.
func (g Geometric) Extract(ctx context.Context, path string) (found []Table, err error) {
	defer recoverPanic(g.Name(), &err)

	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	n, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("counting pages of %s: %w", path, err)
	}

	det := tabtables.NewGeometricDetector()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := loadPage(r, i)
		if err != nil {
			return nil, err
		}
		detected, err := det.Detect(page)
		if err != nil {
			return nil, fmt.Errorf("detecting tables on page %d: %w", i+1, err)
		}
		for _, t := range detected {
			if tbl := fromModel(t); len(tbl) > 0 {
				found = append(found, tbl)
			}
		}
	}
	return found, nil
}

// loadPage builds the layout model the detector works on from the raw text
// fragments of page index i.
func loadPage(r *reader.Reader, i int) (*model.Page, error) {
	p, err := r.GetPage(i)
	if err != nil {
		return nil, fmt.Errorf("reading page %d: %w", i+1, err)
	}
	w, err := p.Width()
	if err != nil {
		return nil, fmt.Errorf("page %d width: %w", i+1, err)
	}
	h, err := p.Height()
	if err != nil {
		return nil, fmt.Errorf("page %d height: %w", i+1, err)
	}
	frags, err := r.ExtractTextFragments(p)
	if err != nil {
		return nil, fmt.Errorf("extracting text on page %d: %w", i+1, err)
	}

	page := model.NewPage(w, h)
	page.Number = i + 1
	for _, f := range frags {
		page.RawText = append(page.RawText, model.TextFragment{
			Text:     f.Text,
			BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		})
	}
	return page, nil
}

// fromModel flattens a detected table into rows of normalised cell text,
// dropping rows whose cells are all blank.
func fromModel(t *model.Table) Table {
	var out Table
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		blank := true
		for j, c := range row {
			cells[j] = normalize(c.Text)
			if cells[j] != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, cells)
		}
	}
	return out
}
