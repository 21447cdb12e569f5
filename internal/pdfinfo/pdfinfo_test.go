// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfinfo

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePDF(t *testing.T, pages int) string {
	t.Helper()
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Text(50, 50, "page")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestPageCount(t *testing.T) {
	for _, pages := range []int{1, 3} {
		n, err := PageCount(writePDF(t, pages))
		require.NoError(t, err)
		assert.Equal(t, pages, n)
	}
}

func TestPageCountErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a pdf at all"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.pdf")},
		{name: "not a pdf", path: garbage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PageCount(tt.path)
			assert.Error(t, err)
		})
	}
}
