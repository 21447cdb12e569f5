// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docconv/internal/convert"
)

// twoPathCommand builds a command taking exactly <input> <output>.
func (a *App) twoPathCommand(tool, use, short string, fn func(c *convert.Converter, ctx context.Context, in, out string) error) *cobra.Command {
	return &cobra.Command{
		Use:                   use,
		Short:                 short,
		Args:                  argsBetween(2, 2),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			return a.run(cmd, tool, in, func(ctx context.Context, c *convert.Converter) ([]string, error) {
				return []string{out}, fn(c, ctx, in, out)
			})
		},
	}
}

// Doc2PDFCommand returns the doc2pdf command.
func (a *App) Doc2PDFCommand() *cobra.Command {
	cmd := a.twoPathCommand("doc2pdf", "doc2pdf <input_file> <output_pdf>",
		"Convert a DOCX, TXT, or HTML file to PDF", (*convert.Converter).DocToPDF)
	cmd.Long = `doc2pdf writes a PDF for a .docx, .txt, .html, or .htm input.

DOCX headings and paragraphs are laid out with fpdf, text files are paginated
at 12pt Helvetica, and HTML is printed by headless Chrome. When Chrome is not
installed the HTML is laid out as plain text instead.`
	return cmd
}

// HTML2DOCXCommand returns the html2docx command.
func (a *App) HTML2DOCXCommand() *cobra.Command {
	return a.twoPathCommand("html2docx", "html2docx <input_html> <output_docx>",
		"Convert an HTML file to DOCX", (*convert.Converter).HTMLToDOCX)
}

// PDF2DOCXCommand returns the pdf2docx command.
func (a *App) PDF2DOCXCommand() *cobra.Command {
	return a.twoPathCommand("pdf2docx", "pdf2docx <input_pdf> <output_docx>",
		"Rebuild a PDF's text layout as a DOCX document", (*convert.Converter).PDFToDOCX)
}

// PDF2ExcelCommand returns the pdf2excel command.
func (a *App) PDF2ExcelCommand() *cobra.Command {
	cmd := a.twoPathCommand("pdf2excel", "pdf2excel <input_pdf> <output_xlsx_or_csv>",
		"Extract the tables of a PDF to XLSX or CSV", (*convert.Converter).PDFToExcel)
	cmd.Long = `pdf2excel detects tables in a PDF and writes them to an .xlsx workbook,
one sheet per table, or to a single .csv file whose header is the union of
every table's header names.`
	return cmd
}

// PDF2PPTCommand returns the pdf2ppt command.
func (a *App) PDF2PPTCommand() *cobra.Command {
	return a.twoPathCommand("pdf2ppt", "pdf2ppt <input_pdf> <output_pptx>",
		"Turn each PDF page into a full-slide picture in a PPTX deck", (*convert.Converter).PDFToPPT)
}

// PDF2ImageCommand returns the pdf2image command. Every written file is
// echoed as an OUTPUT:<path> line for callers that parse stdout.
func (a *App) PDF2ImageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pdf2image <input_pdf> <output_dir> <format> [page]",
		Short: "Rasterise PDF pages to png, jpg, gif, bmp, or tiff images",
		Long: `pdf2image renders every page of a PDF, or the single 1-based page given,
into <output_dir> as <name>_<unix-ms>_page<N>.<ext> at the configured DPI.`,
		Args:                  argsBetween(3, 4),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, outDir, format := args[0], args[1], args[2]
			pageArg := ""
			if len(args) == 4 {
				pageArg = args[3]
			}
			return a.run(cmd, "pdf2image", in, func(ctx context.Context, c *convert.Converter) ([]string, error) {
				page, err := convert.ParsePage(pageArg)
				if err != nil {
					return nil, err
				}
				res, err := c.PDFToImages(ctx, in, outDir, format, page)
				if err != nil {
					return nil, err
				}
				for _, p := range res.Paths {
					fmt.Fprintf(a.Stdout, "OUTPUT:%s\n", p)
				}
				return res.Paths, nil
			})
		},
	}
}

// ToolCommands returns the six converter commands in a stable order.
func (a *App) ToolCommands() []*cobra.Command {
	return []*cobra.Command{
		a.Doc2PDFCommand(),
		a.HTML2DOCXCommand(),
		a.PDF2DOCXCommand(),
		a.PDF2ExcelCommand(),
		a.PDF2ImageCommand(),
		a.PDF2PPTCommand(),
	}
}
