// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageCount(n int, err error) func(string) (int, error) {
	return func(string) (int, error) { return n, err }
}

// deckParts counts slide and media parts in a written PPTX.
func deckParts(t *testing.T, path string) (slides, media int) {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml"):
			slides++
		case strings.HasPrefix(f.Name, "ppt/media/"):
			media++
		}
	}
	return slides, media
}

func pptTempDirs(t *testing.T) []string {
	t.Helper()
	dirs, err := filepath.Glob(filepath.Join(os.TempDir(), "docconv-pptx-*"))
	require.NoError(t, err)
	return dirs
}

func TestPDFToPPT(t *testing.T) {
	tests := []struct {
		name       string
		validated  int
		renderable int
		wantSlides int
	}{
		{name: "counts agree", validated: 3, renderable: 3, wantSlides: 3},
		{name: "renderer sees fewer pages", validated: 4, renderable: 2, wantSlides: 2},
		{name: "renderer sees more pages", validated: 1, renderable: 5, wantSlides: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := pptTempDirs(t)
			doc := &fakeDocument{pages: tt.renderable}
			h := newHarness(t, Options{Open: openerFor(doc), PageCount: pageCount(tt.validated, nil)})
			in := h.path("deck.pdf")
			out := h.path("deck.pptx")

			require.NoError(t, h.c.PDFToPPT(context.Background(), in, out))

			slides, media := deckParts(t, out)
			assert.Equal(t, tt.wantSlides, slides)
			assert.Equal(t, tt.wantSlides, media)
			assert.True(t, doc.closed)

			stdout := h.stdout.String()
			assert.True(t, strings.HasPrefix(stdout, "Converting PDF pages to images...\n"))
			assert.Contains(t, stdout, "Processing page 1/")
			assert.Contains(t, stdout, fmt.Sprintf("(%d slides)\n", tt.wantSlides))
			assert.ElementsMatch(t, before, pptTempDirs(t))
		})
	}
}

func TestPDFToPPTErrors(t *testing.T) {
	tests := []struct {
		name       string
		doc        *fakeDocument
		count      func(string) (int, error)
		wantStderr string
	}{
		{name: "no pages", doc: &fakeDocument{}, count: pageCount(0, nil), wantStderr: "No pages found in PDF\n"},
		{name: "invalid PDF", doc: &fakeDocument{pages: 1}, count: pageCount(0, errors.New("xref table corrupt"))},
		{name: "render failure", doc: &fakeDocument{pages: 2, failOn: 2}, count: pageCount(2, nil)},
		{name: "render panic", doc: &fakeDocument{pages: 2, panicOn: 1}, count: pageCount(2, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{Open: openerFor(tt.doc), PageCount: tt.count})
			out := h.path("deck.pptx")

			err := h.c.PDFToPPT(context.Background(), h.path("deck.pdf"), out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConversion), "got %v", err)
			assert.Equal(t, tt.wantStderr, h.stderr.String())
			requireNoFile(t, out)
		})
	}
}
