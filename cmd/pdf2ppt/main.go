// Package main is the entry point for the standalone pdf2ppt converter.
package main

import (
	"os"

	"github.com/pdiddy/docconv/internal/cli"
)

func main() {
	app := cli.New(os.Stdout, os.Stderr)
	os.Exit(app.Execute(app.PDF2PPTCommand(), os.Args[1:]))
}
