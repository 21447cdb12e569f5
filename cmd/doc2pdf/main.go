// Package main is the entry point for the standalone doc2pdf converter.
package main

import (
	"os"

	"github.com/pdiddy/docconv/internal/cli"
)

func main() {
	app := cli.New(os.Stdout, os.Stderr)
	os.Exit(app.Execute(app.Doc2PDFCommand(), os.Args[1:]))
}
