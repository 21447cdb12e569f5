// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/docconv/internal/tables"
)

const defaultSheet = "Sheet1"

// PDFToExcel extracts the tables of a PDF into an .xlsx workbook (one sheet
// per table) or a single .csv file, chosen by the output extension.
func (c *Converter) PDFToExcel(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)

	format := ext(out)
	if format != ".xlsx" && format != ".csv" {
		return &FormatError{Kind: "output", Ext: format}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	found, err := c.extractTables(ctx, in)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(c.opts.Stderr, "No tables found in PDF. Creating empty file.")
		found = []tables.Table{nil}
	}

	if format == ".xlsx" {
		err = writeXLSX(out, found)
	} else {
		err = writeFile(out, func(w io.Writer) error { return writeCSV(w, found) })
	}
	if err != nil {
		return fmt.Errorf("extracting tables from PDF: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully extracted %d table(s) from %s to %s\n", len(found), in, out)
	return nil
}

// extractTables tries each extractor in turn, moving on only when one
// fails. When all fail the document is treated as having no tables.
func (c *Converter) extractTables(ctx context.Context, in string) ([]tables.Table, error) {
	exs := c.opts.Extractors
	for i, ex := range exs {
		found, err := ex.Extract(ctx, in)
		if err == nil {
			fmt.Fprintf(c.opts.Stdout, "%s extracted %d table(s)\n", ex.Name(), len(found))
			return found, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if i+1 < len(exs) {
			fmt.Fprintf(c.opts.Stderr, "%s error: %v, trying %s\n", ex.Name(), err, exs[i+1].Name())
		} else {
			fmt.Fprintf(c.opts.Stderr, "%s error: %v\n", ex.Name(), err)
		}
		c.log.Debug("table extractor failed", "extractor", ex.Name(), "input", in, "error", err)
	}
	return nil, nil
}

// writeXLSX writes each table to its own sheet, header row in bold. A single
// table keeps the default sheet name; several are named Table_1, Table_2...
func writeXLSX(path string, found []tables.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, t := range found {
		sheet := defaultSheet
		if len(found) > 1 {
			sheet = fmt.Sprintf("Table_%d", i+1)
		}
		if i == 0 {
			if sheet != defaultSheet {
				if err := f.SetSheetName(defaultSheet, sheet); err != nil {
					return err
				}
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		for r, row := range t {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("writing %s row %d: %w", sheet, r+1, err)
			}
		}
		if header := t.Header(); len(header) > 0 {
			last, err := excelize.CoordinatesToCellName(len(header), 1)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
				return err
			}
		}
	}

	return writeFile(path, func(w io.Writer) error { return f.Write(w) })
}

// columnKey identifies the n-th column carrying a given header name within
// one table, so repeated names stay distinct.
type columnKey struct {
	name string
	n    int
}

// writeCSV concatenates the tables under the union of their header names in
// first-seen order. Each data row fills its own table's columns and leaves
// the others blank.
func writeCSV(w io.Writer, found []tables.Table) error {
	var (
		union []columnKey
		index = make(map[columnKey]int)
	)
	tableKeys := make([][]columnKey, len(found))
	for i, t := range found {
		width := 0
		for _, row := range t {
			width = max(width, len(row))
		}
		header := t.Header()
		seen := make(map[string]int)
		keys := make([]columnKey, width)
		for j := 0; j < width; j++ {
			name := ""
			if j < len(header) {
				name = header[j]
			}
			seen[name]++
			keys[j] = columnKey{name: name, n: seen[name]}
			if _, ok := index[keys[j]]; !ok {
				index[keys[j]] = len(union)
				union = append(union, keys[j])
			}
		}
		tableKeys[i] = keys
	}
	if len(union) == 0 {
		_, err := io.WriteString(w, "\n")
		return err
	}

	cw := csv.NewWriter(w)
	names := make([]string, len(union))
	for i, k := range union {
		names[i] = k.name
	}
	if err := cw.Write(names); err != nil {
		return err
	}
	for i, t := range found {
		for _, row := range t.Body() {
			rec := make([]string, len(union))
			for j, v := range row {
				rec[index[tableKeys[i][j]]] = v
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
