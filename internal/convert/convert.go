// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the document conversions behind the docconv
// tools. Each routine reads one input file, delegates the format work to a
// library, and writes exactly one output artifact or nothing at all.
package convert

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pdiddy/docconv/internal/pdfinfo"
	"github.com/pdiddy/docconv/internal/render"
	"github.com/pdiddy/docconv/internal/tables"
	"github.com/pdiddy/docconv/pkg/types"
)

// HTMLPrinter prints an HTML file to PDF. render.Chrome is the production
// implementation; errors wrapping render.ErrUnavailable select the plain
// text fallback.
type HTMLPrinter interface {
	PrintPDF(ctx context.Context, htmlPath string, w io.Writer) error
}

// OfficeConverter converts files the built-in routines cannot handle,
// writing the result into outDir and returning its path.
type OfficeConverter interface {
	Convert(ctx context.Context, input, format, outDir string) (string, error)
}

// Options wires a Converter to its collaborators. Zero fields are replaced
// by production defaults.
type Options struct {
	Config types.Config

	// Stdout receives status lines. Stderr receives warnings.
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger

	HTML      HTMLPrinter
	Open      render.Opener
	PageCount func(path string) (int, error)

	// Extractors are tried in order for PDF tables; later ones run only
	// when an earlier one fails.
	Extractors []tables.Extractor

	// Office is the fallback for orchestrated conversions. Nil disables it.
	Office OfficeConverter

	Now func() time.Time
}

func (o *Options) defaults() {
	def := types.DefaultConfig()
	if o.Config.DPI <= 0 {
		o.Config.DPI = def.DPI
	}
	if o.Config.PageSize == "" {
		o.Config.PageSize = def.PageSize
	}
	if o.Config.RenderTimeout <= 0 {
		o.Config.RenderTimeout = def.RenderTimeout
	}
	if o.Config.OutDir == "" {
		o.Config.OutDir = def.OutDir
	}
	if o.Stdout == nil {
		o.Stdout = io.Discard
	}
	if o.Stderr == nil {
		o.Stderr = io.Discard
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.HTML == nil {
		o.HTML = &render.Chrome{
			Bin:     o.Config.ChromeBin,
			Timeout: o.Config.RenderTimeout,
			Logger:  o.Logger,
		}
	}
	if o.Open == nil {
		o.Open = render.OpenFitz
	}
	if o.PageCount == nil {
		o.PageCount = pdfinfo.PageCount
	}
	if len(o.Extractors) == 0 {
		o.Extractors = []tables.Extractor{tables.Geometric{}, tables.Rows{}}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Converter runs the conversion routines with a fixed set of options.
type Converter struct {
	opts Options
	log  *slog.Logger
}

// New returns a Converter, filling unset options with defaults.
func New(opts Options) *Converter {
	opts.defaults()
	return &Converter{opts: opts, log: opts.Logger}
}

// Config returns the effective configuration.
func (c *Converter) Config() types.Config { return c.opts.Config }
