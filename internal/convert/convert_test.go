// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docconv/internal/render"
	"github.com/pdiddy/docconv/internal/tables"
	"github.com/pdiddy/docconv/pkg/types"
)

// fakePrinter implements HTMLPrinter. It writes canned bytes or returns an
// error, and counts calls.
type fakePrinter struct {
	pdf   []byte
	err   error
	calls int
}

func (f *fakePrinter) PrintPDF(_ context.Context, _ string, w io.Writer) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	_, err := w.Write(f.pdf)
	return err
}

// fakeDocument implements render.Document with blank pages.
type fakeDocument struct {
	pages   int
	failOn  int // 1-based page whose render fails; 0 for none
	panicOn int
	closed  bool
}

func (d *fakeDocument) NumPage() int { return d.pages }

func (d *fakeDocument) Image(page int, _ float64) (image.Image, error) {
	if d.panicOn == page+1 {
		panic("mupdf exploded")
	}
	if d.failOn == page+1 {
		return nil, fmt.Errorf("cannot render page %d", page+1)
	}
	return image.NewRGBA(image.Rect(0, 0, 8, 6)), nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

func openerFor(doc *fakeDocument) render.Opener {
	return func(string) (render.Document, error) { return doc, nil }
}

// fakeExtractor implements tables.Extractor.
type fakeExtractor struct {
	name   string
	found  []tables.Table
	err    error
	panics bool
	calls  int
}

func (f *fakeExtractor) Name() string { return f.name }

func (f *fakeExtractor) Extract(context.Context, string) ([]tables.Table, error) {
	f.calls++
	if f.panics {
		panic("extractor bug")
	}
	return f.found, f.err
}

// fakeOffice implements OfficeConverter by writing a stub file.
type fakeOffice struct {
	err    error
	format string
}

func (f *fakeOffice) Convert(_ context.Context, input, format, outDir string) (string, error) {
	f.format = format
	if f.err != nil {
		return "", f.err
	}
	out := filepath.Join(outDir, stem(input)+"."+format)
	return out, os.WriteFile(out, []byte("office"), 0o644)
}

var fixedNow = time.UnixMilli(1700000000123)

type harness struct {
	c      *Converter
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	dir    string
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, dir: t.TempDir()}
	opts.Stdout = h.stdout
	opts.Stderr = h.stderr
	if opts.HTML == nil {
		opts.HTML = &fakePrinter{err: render.ErrUnavailable}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	if opts.Config == (types.Config{}) {
		opts.Config = types.DefaultConfig()
	}
	h.c = New(opts)
	return h
}

func (h *harness) path(name string) string { return filepath.Join(h.dir, name) }

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	p := h.path(name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func requireNoFile(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.True(t, errors.Is(err, os.ErrNotExist), "expected %s to be absent, stat err: %v", path, err)
}

// requireNoTempFiles checks that no temporary siblings were left in dir.
func requireNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	require.Empty(t, matches)
}
