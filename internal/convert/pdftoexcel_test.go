// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/docconv/internal/tables"
)

var (
	people = tables.Table{{"Name", "Age"}, {"Ada", "36"}, {"Alan", "41"}}
	places = tables.Table{{"City", "Name"}, {"Paris", "Lutetia"}}
)

func TestPDFToExcelXLSX(t *testing.T) {
	tests := []struct {
		name       string
		found      []tables.Table
		wantSheets []string
		wantStderr string
		wantLine   string
	}{
		{
			name:       "single table keeps Sheet1",
			found:      []tables.Table{people},
			wantSheets: []string{"Sheet1"},
			wantLine:   "Successfully extracted 1 table(s)",
		},
		{
			name:       "several tables get numbered sheets",
			found:      []tables.Table{people, places},
			wantSheets: []string{"Table_1", "Table_2"},
			wantLine:   "Successfully extracted 2 table(s)",
		},
		{
			name:       "no tables writes an empty sheet",
			found:      nil,
			wantSheets: []string{"Sheet1"},
			wantStderr: "No tables found in PDF. Creating empty file.\n",
			wantLine:   "Successfully extracted 1 table(s)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &fakeExtractor{name: "tabula", found: tt.found}
			h := newHarness(t, Options{Extractors: []tables.Extractor{primary}})
			in := h.write(t, "report.pdf", "%PDF")
			out := h.path("report.xlsx")

			require.NoError(t, h.c.PDFToExcel(context.Background(), in, out))
			assert.Equal(t, tt.wantStderr, h.stderr.String())
			assert.Contains(t, h.stdout.String(), "tabula extracted")
			assert.Contains(t, h.stdout.String(), tt.wantLine)

			f, err := excelize.OpenFile(out)
			require.NoError(t, err)
			defer f.Close()
			assert.Equal(t, tt.wantSheets, f.GetSheetList())
			for i, tbl := range tt.found {
				rows, err := f.GetRows(tt.wantSheets[i])
				require.NoError(t, err)
				assert.Equal(t, [][]string(tbl), rows)
			}
		})
	}
}

func TestPDFToExcelCSVUnionHeader(t *testing.T) {
	primary := &fakeExtractor{name: "tabula", found: []tables.Table{people, places}}
	h := newHarness(t, Options{Extractors: []tables.Extractor{primary}})
	in := h.write(t, "report.pdf", "%PDF")
	out := h.path("report.csv")

	require.NoError(t, h.c.PDFToExcel(context.Background(), in, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	want := "Name,Age,City\n" +
		"Ada,36,\n" +
		"Alan,41,\n" +
		"Lutetia,,Paris\n"
	assert.Equal(t, want, string(data))
}

func TestPDFToExcelCSVNoTables(t *testing.T) {
	primary := &fakeExtractor{name: "tabula"}
	h := newHarness(t, Options{Extractors: []tables.Extractor{primary}})
	in := h.write(t, "report.pdf", "%PDF")
	out := h.path("report.csv")

	require.NoError(t, h.c.PDFToExcel(context.Background(), in, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(data))
	assert.Contains(t, h.stderr.String(), "No tables found in PDF. Creating empty file.")
}

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name  string
		found []tables.Table
		want  string
	}{
		{name: "empty table", found: []tables.Table{nil}, want: "\n"},
		{
			name:  "repeated header names stay distinct",
			found: []tables.Table{{{"x", "x"}, {"1", "2"}}, {{"x"}, {"3"}}},
			want:  "x,x\n1,2\n3,\n",
		},
		{
			name:  "rows wider than header",
			found: []tables.Table{{{"a"}, {"1", "extra"}}},
			want:  "a,\n1,extra\n",
		},
		{
			name:  "commas are quoted",
			found: []tables.Table{{{"note"}, {"a, b"}}},
			want:  "note\n\"a, b\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeCSV(&buf, tt.found))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPDFToExcelFallback(t *testing.T) {
	tests := []struct {
		name          string
		primary       *fakeExtractor
		fallback      *fakeExtractor
		wantFallback  bool
		wantStderr    []string
		wantExtracted string
	}{
		{
			name:          "primary succeeds with zero tables",
			primary:       &fakeExtractor{name: "tabula"},
			fallback:      &fakeExtractor{name: "row extractor", found: []tables.Table{people}},
			wantStderr:    []string{"No tables found in PDF"},
			wantExtracted: "tabula extracted 0 table(s)",
		},
		{
			name:          "primary error",
			primary:       &fakeExtractor{name: "tabula", err: errors.New("bad xref")},
			fallback:      &fakeExtractor{name: "row extractor", found: []tables.Table{people}},
			wantFallback:  true,
			wantStderr:    []string{"tabula error: bad xref, trying row extractor"},
			wantExtracted: "row extractor extracted 1 table(s)",
		},
		{
			name:          "primary recovered its own panic",
			primary:       &fakeExtractor{name: "tabula", err: errors.New("tabula panicked: boom")},
			fallback:      &fakeExtractor{name: "row extractor", found: []tables.Table{people}},
			wantFallback:  true,
			wantStderr:    []string{"tabula error: tabula panicked: boom, trying row extractor"},
			wantExtracted: "row extractor extracted 1 table(s)",
		},
		{
			name:         "both fail",
			primary:      &fakeExtractor{name: "tabula", err: errors.New("bad xref")},
			fallback:     &fakeExtractor{name: "row extractor", err: errors.New("no rows")},
			wantFallback: true,
			wantStderr:   []string{"row extractor error: no rows", "No tables found in PDF"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{Extractors: []tables.Extractor{tt.primary, tt.fallback}})
			in := h.write(t, "report.pdf", "%PDF")
			out := h.path("report.xlsx")

			require.NoError(t, h.c.PDFToExcel(context.Background(), in, out))
			assert.Equal(t, tt.wantFallback, tt.fallback.calls == 1)
			for _, s := range tt.wantStderr {
				assert.Contains(t, h.stderr.String(), s)
			}
			if tt.wantExtracted != "" {
				assert.Contains(t, h.stdout.String(), tt.wantExtracted)
			}
		})
	}
}

func TestPDFToExcelUnsupportedOutput(t *testing.T) {
	primary := &fakeExtractor{name: "tabula", found: []tables.Table{people}}
	h := newHarness(t, Options{Extractors: []tables.Extractor{primary}})
	in := h.write(t, "report.pdf", "%PDF")
	out := h.path("report.ods")

	err := h.c.PDFToExcel(context.Background(), in, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Equal(t, "Unsupported output format: .ods", err.Error())
	assert.Zero(t, primary.calls)
	requireNoFile(t, out)
}

func TestPDFToExcelExtractorPanicIsRecovered(t *testing.T) {
	primary := &fakeExtractor{name: "tabula", panics: true}
	h := newHarness(t, Options{Extractors: []tables.Extractor{primary}})
	in := h.write(t, "report.pdf", "%PDF")
	out := h.path("report.csv")

	err := h.c.PDFToExcel(context.Background(), in, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversion))
	requireNoFile(t, out)
}
