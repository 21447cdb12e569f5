// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docconv CLI. Every standalone
// converter is available as a subcommand, alongside convert, history, and
// cleanup.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docconv/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCmd(app *cli.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docconv",
		Short: "Convert documents between PDF, DOCX, HTML, text, spreadsheet, image, and slide formats",
		Long: `docconv converts documents by handing the format work to Go libraries:
fpdf and headless Chrome for PDF output, go-docx for DOCX, excelize for XLSX,
tabula for reading DOCX and PDF layout, and MuPDF for rendering PDF pages.

Each converter is also shipped as its own binary (doc2pdf, html2docx,
pdf2docx, pdf2excel, pdf2image, pdf2ppt) with the same arguments.`,
	}
	rootCmd.AddCommand(app.ToolCommands()...)
	rootCmd.AddCommand(
		app.ConvertCommand(),
		app.HistoryCommand(),
		app.CleanupCommand(),
		newVersionCmd(),
	)
	return rootCmd
}

func main() {
	app := cli.New(os.Stdout, os.Stderr)
	os.Exit(app.Execute(newRootCmd(app), os.Args[1:]))
}
