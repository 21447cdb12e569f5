// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tables extracts tabular data from PDF files. Two extractors are
// provided: a geometric detector backed by tabula and a simpler row-based
// reader backed by ledongthuc/pdf, used when the first one fails.
package tables

import (
	"context"
	"fmt"
	"strings"
)

// Table is one extracted table. The first row is the header.
type Table [][]string

// Header returns the first row, or nil for an empty table.
func (t Table) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Body returns every row after the header.
func (t Table) Body() [][]string {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// Extractor finds the tables in a PDF file.
type Extractor interface {
	// Name identifies the extractor in status lines.
	Name() string

	// Extract returns every table found in the document, in page order.
	Extract(ctx context.Context, path string) ([]Table, error)
}

// recoverPanic converts a panic raised by a PDF library into an error.
func recoverPanic(name string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s panicked: %v", name, r)
	}
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
