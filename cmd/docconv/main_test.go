// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/docconv/internal/cli"
)

func TestRootCommands(t *testing.T) {
	app := cli.New(&bytes.Buffer{}, &bytes.Buffer{})
	root := newRootCmd(app)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{
		"doc2pdf", "html2docx", "pdf2docx", "pdf2excel", "pdf2image", "pdf2ppt",
		"convert", "history", "cleanup", "version",
	}, names)
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())
	var stdout, stderr bytes.Buffer
	app := cli.New(&stdout, &stderr)

	code := app.ExecuteContext(context.Background(), newRootCmd(app), []string{"version"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "docconv dev\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestSubcommandUsageLine(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := cli.New(&stdout, &stderr)

	code := app.ExecuteContext(context.Background(), newRootCmd(app), []string{"pdf2ppt", "only-one.pdf"})
	assert.Equal(t, 1, code)
	assert.Equal(t, "Usage: docconv pdf2ppt <input_pdf> <output_pptx>\n", stderr.String())
}
