// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFormat(t *testing.T) {
	tests := []struct {
		in      string
		wantExt string
		wantErr bool
	}{
		{in: "png", wantExt: "png"},
		{in: "PNG", wantExt: "png"},
		{in: "jpg", wantExt: "jpg"},
		{in: "jpeg", wantExt: "jpg"},
		{in: "gif", wantExt: "gif"},
		{in: "bmp", wantExt: "bmp"},
		{in: "tif", wantExt: "tiff"},
		{in: ".tiff", wantExt: "tiff"},
		{in: "webp", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := LookupFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, f.Ext)
		})
	}
}

func TestImageFormatEncode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	magic := map[string][]byte{
		"png":  []byte("\x89PNG"),
		"jpg":  {0xFF, 0xD8},
		"gif":  []byte("GIF8"),
		"bmp":  []byte("BM"),
		"tiff": []byte("II*\x00"),
	}
	for _, name := range []string{"png", "jpeg", "gif", "bmp", "tiff"} {
		t.Run(name, func(t *testing.T) {
			f, err := LookupFormat(name)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, f.Encode(&buf, img))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), magic[f.Ext]), "unexpected header for %s", name)
		})
	}
}

func TestChromeMissingBinaryIsUnavailable(t *testing.T) {
	c := &Chrome{Bin: filepath.Join(t.TempDir(), "no-such-chrome")}
	var buf bytes.Buffer
	err := c.PrintPDF(context.Background(), "page.html", &buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
	assert.Zero(t, buf.Len())
}

func TestOpenFitzMissingFile(t *testing.T) {
	_, err := OpenFitz(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
