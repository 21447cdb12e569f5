// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptx writes picture-only PowerPoint presentations: one blank slide
// per image, each image stretched over the whole slide.
package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"text/template"
)

// EMUPerInch is the number of English Metric Units in one inch.
const EMUPerInch = 914400

const (
	// DefaultWidth and DefaultHeight describe a 10in x 7.5in (4:3) slide.
	DefaultWidth  = 10 * EMUPerInch
	DefaultHeight = 15 * EMUPerInch / 2
)

// slide is one page picture, held either in memory or as a file read when the
// package is written.
type slide struct {
	path string
	data []byte
}

// Presentation accumulates slides and writes them as a .pptx package.
type Presentation struct {
	Width  int64
	Height int64

	slides []slide
}

// New returns an empty presentation with the given slide size in EMU.
func New(width, height int64) *Presentation {
	return &Presentation{Width: width, Height: height}
}

// AddPicture appends a slide showing the PNG image data.
func (p *Presentation) AddPicture(png []byte) {
	p.slides = append(p.slides, slide{data: png})
}

// AddPictureFile appends a slide showing the PNG file at path. The file is
// read when the presentation is written.
func (p *Presentation) AddPictureFile(path string) {
	p.slides = append(p.slides, slide{path: path})
}

// Len returns the number of slides.
func (p *Presentation) Len() int { return len(p.slides) }

type slideRef struct {
	N     int
	ID    int
	RelID int
}

type packageData struct {
	Width  int64
	Height int64
	Slides []slideRef
}

// Write serialises the presentation as a zip package to w.
func (p *Presentation) Write(w io.Writer) error {
	data := packageData{Width: p.Width, Height: p.Height}
	for i := range p.slides {
		n := i + 1
		data.Slides = append(data.Slides, slideRef{N: n, ID: 255 + n, RelID: n + 2})
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		tmpl *template.Template
	}{
		{"[Content_Types].xml", contentTypesTmpl},
		{"_rels/.rels", rootRelsTmpl},
		{"docProps/app.xml", appTmpl},
		{"ppt/presentation.xml", presentationTmpl},
		{"ppt/_rels/presentation.xml.rels", presentationRelsTmpl},
		{"ppt/slideMasters/slideMaster1.xml", masterTmpl},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRelsTmpl},
		{"ppt/slideLayouts/slideLayout1.xml", layoutTmpl},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", layoutRelsTmpl},
		{"ppt/theme/theme1.xml", themeTmpl},
	}
	for _, part := range parts {
		if err := writePart(zw, part.name, part.tmpl, data); err != nil {
			return err
		}
	}

	for i, s := range data.Slides {
		if err := writePart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", s.N), slideTmpl, data); err != nil {
			return err
		}
		if err := writePart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", s.N), slideRelsTmpl, s); err != nil {
			return err
		}
		if err := p.writeMedia(zw, s.N, p.slides[i]); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing pptx package: %w", err)
	}
	return nil
}

func writePart(zw *zip.Writer, name string, tmpl *template.Template, data any) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if err := tmpl.Execute(fw, data); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

func (p *Presentation) writeMedia(zw *zip.Writer, n int, s slide) error {
	name := fmt.Sprintf("ppt/media/image%d.png", n)
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if s.path == "" {
		_, err = fw.Write(s.data)
	} else {
		err = copyFile(fw, s.path)
	}
	if err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
