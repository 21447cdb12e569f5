// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageFormat is a raster output format.
type ImageFormat struct {
	// Name is the canonical format name.
	Name string
	// Ext is the file extension written, without the dot.
	Ext string

	encode func(w io.Writer, img image.Image) error
}

// Encode writes img to w in this format.
func (f ImageFormat) Encode(w io.Writer, img image.Image) error {
	return f.encode(w, img)
}

var (
	formatPNG  = ImageFormat{Name: "png", Ext: "png", encode: png.Encode}
	formatJPEG = ImageFormat{Name: "jpeg", Ext: "jpg", encode: func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpeg.DefaultQuality})
	}}
	formatGIF = ImageFormat{Name: "gif", Ext: "gif", encode: func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	}}
	formatBMP  = ImageFormat{Name: "bmp", Ext: "bmp", encode: bmp.Encode}
	formatTIFF = ImageFormat{Name: "tiff", Ext: "tiff", encode: func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}}
)

var imageFormats = map[string]ImageFormat{
	"png":  formatPNG,
	"jpg":  formatJPEG,
	"jpeg": formatJPEG,
	"gif":  formatGIF,
	"bmp":  formatBMP,
	"tiff": formatTIFF,
	"tif":  formatTIFF,
}

// LookupFormat resolves a user-supplied format name, case-insensitively.
func LookupFormat(name string) (ImageFormat, error) {
	f, ok := imageFormats[strings.ToLower(strings.TrimPrefix(name, "."))]
	if !ok {
		return ImageFormat{}, fmt.Errorf("unknown image format %q", name)
	}
	return f, nil
}
