// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in, ext, dir, want string
	}{
		{"docs/report.docx", "pdf", "converted", filepath.Join("converted", "report_converted.pdf")},
		{"report.tar.csv", ".json", "out", filepath.Join("out", "report.tar_converted.json")},
		{"/abs/Notes.TXT", "pdf", "", "Notes_converted.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.in, tt.ext, tt.dir))
		})
	}
}

func TestLookupRoute(t *testing.T) {
	tests := []struct {
		in, format string
		wantOK     bool
		wantExt    string
	}{
		{"a.docx", "pdf", true, "pdf"},
		{"a.DOCX", "HTML", true, "html"},
		{"a.pdf", "xls", true, "xlsx"},
		{"a.pdf", ".ppt", true, "pptx"},
		{"a.htm", "docx", true, "docx"},
		{"a.csv", "json", true, "json"},
		{"a.odt", "pdf", false, ""},
		{"a.pdf", "epub", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in+"->"+tt.format, func(t *testing.T) {
			r, ok := lookupRoute(tt.in, tt.format)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantExt, r.ext)
		})
	}
}

func TestConvertBuiltIn(t *testing.T) {
	h := newHarness(t, Options{})
	in := h.write(t, "people.csv", "name\nAda\n")
	outDir := h.path("converted")

	out, err := h.c.Convert(context.Background(), in, "json", outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "people_converted.json"), out)
	assert.FileExists(t, out)
}

func TestConvertUsesConfiguredOutDir(t *testing.T) {
	h := newHarness(t, Options{})
	h.c.opts.Config.OutDir = h.path("fromconfig")
	in := h.write(t, "notes.txt", "hello\n")

	out, err := h.c.Convert(context.Background(), in, "pdf", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(h.path("fromconfig"), "notes_converted.pdf"), out)
}

func TestConvertOfficeFallback(t *testing.T) {
	office := &fakeOffice{}
	h := newHarness(t, Options{Office: office})
	in := h.write(t, "memo.odt", "odt")
	outDir := h.path("converted")

	out, err := h.c.Convert(context.Background(), in, "PDF", outDir)
	require.NoError(t, err)
	assert.Equal(t, "pdf", office.format)
	assert.Equal(t, filepath.Join(outDir, "memo.pdf"), out)
	assert.FileExists(t, out)
}

func TestConvertOfficeErrors(t *testing.T) {
	t.Run("no office converter", func(t *testing.T) {
		h := newHarness(t, Options{})
		in := h.write(t, "memo.odt", "odt")

		_, err := h.c.Convert(context.Background(), in, "pdf", h.dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
		assert.True(t, errors.Is(err, ErrMissingDependency))
		assert.Contains(t, err.Error(), "odt -> pdf")
	})

	t.Run("office failure", func(t *testing.T) {
		h := newHarness(t, Options{Office: &fakeOffice{err: errors.New("soffice exited 1")}})
		in := h.write(t, "memo.odt", "odt")

		_, err := h.c.Convert(context.Background(), in, "pdf", h.dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConversion))
		assert.Contains(t, err.Error(), "soffice exited 1")
	})

	t.Run("missing input", func(t *testing.T) {
		office := &fakeOffice{}
		h := newHarness(t, Options{Office: office})

		_, err := h.c.Convert(context.Background(), h.path("gone.odt"), "pdf", h.dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConversion))
		assert.Empty(t, office.format)
	})
}

func TestConvertBatch(t *testing.T) {
	h := newHarness(t, Options{})
	outDir := h.path("converted")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	a := h.write(t, "a.csv", "k\n1\n")
	b := h.write(t, "b.csv", "k\n2\n")
	bad := h.write(t, "c.xyz", "?")
	existing := filepath.Join(outDir, "b_converted.json")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0o644))

	var status bytes.Buffer
	result := h.c.ConvertBatch(context.Background(), []string{a, b, bad}, "json", outDir, true, &status)

	assert.Equal(t, BatchResult{
		Converted: 1,
		Skipped:   1,
		Failed:    1,
		Outputs:   []string{filepath.Join(outDir, "a_converted.json")},
	}, result)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())

	out := status.String()
	assert.Contains(t, out, "Converted "+a+" -> "+filepath.Join(outDir, "a_converted.json")+"\n")
	assert.Contains(t, out, "skipped: "+b+" (already exists)\n")
	assert.Contains(t, out, "failed:  "+bad+" (")
	assert.Contains(t, out, "Batch summary: 1 converted, 1 skipped, 1 failed (total: 3)")

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestConvertBatchSingleInputHasNoSummary(t *testing.T) {
	h := newHarness(t, Options{})
	in := h.write(t, "a.csv", "k\n1\n")

	var status bytes.Buffer
	result := h.c.ConvertBatch(context.Background(), []string{in}, "json", h.dir, false, &status)
	assert.Equal(t, 1, result.Converted)
	assert.False(t, result.HasFailures())
	assert.NotContains(t, status.String(), "Batch summary")
}

func TestConvertBatchCancelled(t *testing.T) {
	h := newHarness(t, Options{})
	in := h.write(t, "a.csv", "k\n1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var status bytes.Buffer
	result := h.c.ConvertBatch(ctx, []string{in, in}, "json", h.dir, false, &status)
	assert.Equal(t, 2, result.Failed)
	assert.Contains(t, status.String(), context.Canceled.Error())
}
