// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakePNG = []byte("\x89PNG\r\n\x1a\nfake")

func readPackage(t *testing.T, p *Presentation) map[string][]byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	parts := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = data
	}
	return parts
}

func countPrefix(parts map[string][]byte, prefix, suffix string) int {
	n := 0
	for name := range parts {
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			n++
		}
	}
	return n
}

func TestWriteOneSlidePerPicture(t *testing.T) {
	dir := t.TempDir()
	onDisk := filepath.Join(dir, "page2.png")
	require.NoError(t, os.WriteFile(onDisk, []byte("second"), 0o644))

	p := New(DefaultWidth, DefaultHeight)
	p.AddPicture(fakePNG)
	p.AddPictureFile(onDisk)
	p.AddPicture(fakePNG)
	require.Equal(t, 3, p.Len())

	parts := readPackage(t, p)

	assert.Equal(t, 3, countPrefix(parts, "ppt/slides/slide", ".xml"))
	assert.Equal(t, 3, countPrefix(parts, "ppt/media/image", ".png"))
	assert.Equal(t, fakePNG, parts["ppt/media/image1.png"])
	assert.Equal(t, []byte("second"), parts["ppt/media/image2.png"])

	pres := string(parts["ppt/presentation.xml"])
	assert.Contains(t, pres, `<p:sldSz cx="9144000" cy="6858000"/>`)
	assert.Contains(t, pres, `<p:sldId id="256" r:id="rId3"/>`)
	assert.Contains(t, pres, `<p:sldId id="258" r:id="rId5"/>`)

	slide := string(parts["ppt/slides/slide1.xml"])
	assert.Contains(t, slide, `<a:ext cx="9144000" cy="6858000"/>`)
	assert.Contains(t, string(parts["ppt/slides/_rels/slide3.xml.rels"]), `../media/image3.png`)
	assert.Contains(t, string(parts["[Content_Types].xml"]), `/ppt/slides/slide3.xml`)
}

func TestWritePartsAreWellFormedXML(t *testing.T) {
	p := New(DefaultWidth, DefaultHeight)
	p.AddPicture(fakePNG)
	parts := readPackage(t, p)

	for name, data := range parts {
		if !strings.HasSuffix(name, ".xml") && !strings.HasSuffix(name, ".rels") {
			continue
		}
		t.Run(name, func(t *testing.T) {
			dec := xml.NewDecoder(bytes.NewReader(data))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
			}
		})
	}
}

func TestWriteMissingPictureFile(t *testing.T) {
	p := New(DefaultWidth, DefaultHeight)
	p.AddPictureFile(filepath.Join(t.TempDir(), "gone.png"))
	err := p.Write(io.Discard)
	assert.Error(t, err)
}

func TestWriteEmptyPresentation(t *testing.T) {
	parts := readPackage(t, New(DefaultWidth, DefaultHeight))
	assert.Zero(t, countPrefix(parts, "ppt/slides/slide", ".xml"))
	assert.NotContains(t, string(parts["ppt/presentation.xml"]), "sldIdLst")
}
