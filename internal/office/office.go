// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office runs a headless LibreOffice for the conversions docconv
// has no built-in routine for.
package office

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	binSoffice     = "soffice"
	binLibreoffice = "libreoffice"
)

// ErrNotFound reports that no LibreOffice binary is installed or runnable.
var ErrNotFound = errors.New("no office converter available")

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Soffice converts documents by running LibreOffice in headless mode.
type Soffice struct {
	bin  string
	exec executor
}

// Name returns the binary this converter runs.
func (s *Soffice) Name() string { return s.bin }

func (s *Soffice) available(ctx context.Context) bool {
	if _, err := s.exec.LookPath(s.bin); err != nil {
		return false
	}
	return s.exec.Run(ctx, s.bin, []string{"--version"}, io.Discard, io.Discard) == nil
}

// Convert runs `--headless --convert-to <format> --outdir <outDir> <input>`
// and returns the path LibreOffice wrote. format may carry a filter suffix
// such as "pdf:writer_pdf_Export"; only the part before the colon names the
// output extension.
func (s *Soffice) Convert(ctx context.Context, input, format, outDir string) (string, error) {
	args := []string{"--headless", "--convert-to", format, "--outdir", outDir, input}

	var stderr bytes.Buffer
	if err := s.exec.Run(ctx, s.bin, args, io.Discard, &stderr); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("running %s: %w: %s", s.bin, err, msg)
		}
		return "", fmt.Errorf("running %s: %w", s.bin, err)
	}

	ext, _, _ := strings.Cut(format, ":")
	out, err := findOutput(input, ext, outDir)
	if err != nil {
		return "", fmt.Errorf("%s %s to %s: %w", s.bin, filepath.Ext(input), ext, err)
	}
	return out, nil
}

// findOutput locates the file LibreOffice wrote for input. It expects
// <stem>.<ext> and otherwise accepts any file in outDir that starts with the
// stem and ends with the extension, case-insensitively.
func findOutput(input, ext, outDir string) (string, error) {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, e := range []string{ext, strings.ToLower(ext)} {
		p := filepath.Join(outDir, stem+"."+e)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("reading output directory: %w", err)
	}
	suffix := "." + strings.ToLower(ext)
	for _, e := range entries {
		name := e.Name()
		if e.Type().IsRegular() && strings.HasPrefix(name, stem) && strings.HasSuffix(strings.ToLower(name), suffix) {
			return filepath.Join(outDir, name), nil
		}
	}
	return "", errors.New("conversion completed but output file not found")
}

var defaultExec = &osExecutor{}

// Detect returns a converter for bin when it is set, otherwise it tries
// soffice and falls back to libreoffice.
func Detect(ctx context.Context, bin string) (*Soffice, error) {
	return detect(ctx, bin, defaultExec)
}

func detect(ctx context.Context, bin string, exec executor) (*Soffice, error) {
	candidates := []string{binSoffice, binLibreoffice}
	if bin != "" {
		candidates = []string{bin}
	}
	for _, c := range candidates {
		s := &Soffice{bin: c, exec: exec}
		if s.available(ctx) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: none of %s found or operational", ErrNotFound, strings.Join(candidates, ", "))
}
