// Package main is the entry point for the standalone html2docx converter.
package main

import (
	"os"

	"github.com/pdiddy/docconv/internal/cli"
)

func main() {
	app := cli.New(os.Stdout, os.Stderr)
	os.Exit(app.Execute(app.HTML2DOCXCommand(), os.Args[1:]))
}
