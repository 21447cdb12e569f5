// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cleanup removes stale conversion outputs.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Summary counts what one sweep removed.
type Summary struct {
	Files int
	Dirs  int
}

// Sweeper deletes files older than MaxAge below a set of directories.
type Sweeper struct {
	MaxAge time.Duration
	Out    io.Writer
	Logger *slog.Logger
	Now    func() time.Time
}

func (s *Sweeper) defaults() {
	if s.Out == nil {
		s.Out = io.Discard
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Now == nil {
		s.Now = time.Now
	}
}

// Clean sweeps each directory in turn. Missing directories are skipped.
func (s *Sweeper) Clean(dirs ...string) (Summary, error) {
	s.defaults()
	var total Summary
	for _, dir := range dirs {
		sum, err := s.clean(dir, s.Now())
		total.Files += sum.Files
		total.Dirs += sum.Dirs
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Watch sweeps immediately and then on every tick of interval until ctx is
// done.
func (s *Sweeper) Watch(ctx context.Context, interval time.Duration, dirs ...string) error {
	s.defaults()
	if interval <= 0 {
		return fmt.Errorf("cleanup interval must be positive, got %s", interval)
	}
	fmt.Fprintln(s.Out, "Starting cleanup service...")
	if _, err := s.Clean(dirs...); err != nil {
		s.Logger.Warn("cleanup failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.Out, "Cleanup service stopped")
			return nil
		case <-ticker.C:
			fmt.Fprintln(s.Out, "Running cleanup...")
			if _, err := s.Clean(dirs...); err != nil {
				s.Logger.Warn("cleanup failed", "error", err)
			}
		}
	}
}

// clean removes stale regular files in dir and then, depth first, every
// subdirectory the sweep left empty. dir itself is kept.
func (s *Sweeper) clean(dir string, now time.Time) (Summary, error) {
	var sum Summary
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		s.Logger.Debug("cleanup directory missing", "dir", dir)
		return sum, nil
	}
	if err != nil {
		return sum, fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case e.Type().IsRegular():
			info, err := e.Info()
			if err != nil {
				s.Logger.Debug("skipping unreadable file", "path", path, "error", err)
				continue
			}
			if now.Sub(info.ModTime()) <= s.MaxAge {
				continue
			}
			if err := os.Remove(path); err != nil {
				s.Logger.Warn("cannot remove stale file", "path", path, "error", err)
				continue
			}
			fmt.Fprintf(s.Out, "Cleaned up: %s\n", e.Name())
			sum.Files++

		case e.IsDir():
			sub, err := s.clean(path, now)
			sum.Files += sub.Files
			sum.Dirs += sub.Dirs
			if err != nil {
				return sum, err
			}
			left, err := os.ReadDir(path)
			if err != nil || len(left) > 0 {
				continue
			}
			if err := os.Remove(path); err != nil {
				s.Logger.Warn("cannot remove empty directory", "path", path, "error", err)
				continue
			}
			fmt.Fprintf(s.Out, "Removed empty directory: %s\n", e.Name())
			sum.Dirs++
		}
	}
	return sum, nil
}
