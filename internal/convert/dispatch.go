// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type routine func(c *Converter, ctx context.Context, in, out string) error

// route is a built-in conversion and the extension it writes.
type route struct {
	ext string
	run routine
}

// routes maps input extension and target format to a built-in routine.
// Anything missing here goes to the office fallback.
var routes = map[string]map[string]route{
	"docx": {
		"html": {"html", (*Converter).DOCXToHTML},
		"txt":  {"txt", (*Converter).DOCXToText},
		"pdf":  {"pdf", (*Converter).DocToPDF},
	},
	"txt": {
		"pdf": {"pdf", (*Converter).DocToPDF},
	},
	"html": {
		"docx": {"docx", (*Converter).HTMLToDOCX},
		"pdf":  {"pdf", (*Converter).DocToPDF},
	},
	"htm": {
		"docx": {"docx", (*Converter).HTMLToDOCX},
		"pdf":  {"pdf", (*Converter).DocToPDF},
	},
	"csv": {
		"json": {"json", (*Converter).CSVToJSON},
	},
	"json": {
		"csv": {"csv", (*Converter).JSONToCSV},
	},
	"pdf": {
		"docx": {"docx", (*Converter).PDFToDOCX},
		"doc":  {"docx", (*Converter).PDFToDOCX},
		"xlsx": {"xlsx", (*Converter).PDFToExcel},
		"xls":  {"xlsx", (*Converter).PDFToExcel},
		"csv":  {"csv", (*Converter).PDFToExcel},
		"pptx": {"pptx", (*Converter).PDFToPPT},
		"ppt":  {"pptx", (*Converter).PDFToPPT},
	},
}

// OutputPath returns <outDir>/<stem>_converted.<ext> for input in.
func OutputPath(in, ext, outDir string) string {
	return filepath.Join(outDir, stem(in)+"_converted."+strings.TrimPrefix(ext, "."))
}

func lookupRoute(in, format string) (route, bool) {
	from := strings.TrimPrefix(ext(in), ".")
	to := strings.ToLower(strings.TrimPrefix(format, "."))
	r, ok := routes[from][to]
	return r, ok
}

// Convert converts in to the target format inside outDir (the configured
// out_dir when empty) and returns the path written. Pairs without a
// built-in routine are handed to the office converter.
func (c *Converter) Convert(ctx context.Context, in, format, outDir string) (string, error) {
	if outDir == "" {
		outDir = c.opts.Config.OutDir
	}
	if r, ok := lookupRoute(in, format); ok {
		out := OutputPath(in, r.ext, outDir)
		if err := r.run(c, ctx, in, out); err != nil {
			return "", err
		}
		return out, nil
	}

	to := strings.ToLower(strings.TrimPrefix(format, "."))
	pair := &FormatError{Kind: "conversion", Ext: strings.TrimPrefix(ext(in), ".") + " -> " + to}
	if c.opts.Office == nil {
		return "", fmt.Errorf("%w (no office converter available: %w)", pair, ErrMissingDependency)
	}
	if _, err := os.Stat(in); err != nil {
		return "", failed(err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", failed(err)
	}
	c.log.Info("delegating to office converter", "input", in, "format", to)
	out, err := c.opts.Office.Convert(ctx, in, to, outDir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", pair.Ext, failed(err))
	}
	return out, nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Outputs lists the files written, in input order.
	Outputs []string
}

// Total returns the total number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any input failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch converts each input to format, printing one status line per
// input to w and a summary when there is more than one. With skipExisting,
// inputs whose built-in output already exists are left alone.
func (c *Converter) ConvertBatch(ctx context.Context, inputs []string, format, outDir string, skipExisting bool, w io.Writer) BatchResult {
	if outDir == "" {
		outDir = c.opts.Config.OutDir
	}
	var result BatchResult
	for _, in := range inputs {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", in, ctx.Err())
			result.Failed++
			continue
		}
		if r, ok := lookupRoute(in, format); ok && skipExisting {
			out := OutputPath(in, r.ext, outDir)
			if _, err := os.Stat(out); err == nil {
				fmt.Fprintf(w, "skipped: %s (already exists)\n", in)
				result.Skipped++
				continue
			}
		}
		out, err := c.Convert(ctx, in, format, outDir)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", in, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "Converted %s -> %s\n", in, out)
		result.Converted++
		result.Outputs = append(result.Outputs, out)
	}
	if len(inputs) > 1 {
		fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
			result.Converted, result.Skipped, result.Failed, result.Total())
	}
	return result
}
