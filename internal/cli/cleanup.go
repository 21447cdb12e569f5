// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/docconv/internal/cleanup"
)

// CleanupCommand returns `cleanup [dir...]`, which deletes outputs older
// than the retention window.
func (a *App) CleanupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup [dir...]",
		Short: "Delete converted files older than max-age",
		Long: `Cleanup removes regular files older than --max-age (max_age in the
config, default 1h) below each directory, then removes directories the sweep
left empty. With no directories it sweeps out_dir. With --interval it keeps
sweeping until interrupted.`,
		RunE: a.runCleanup,
	}
	cmd.Flags().Duration("max-age", 0, "retention window (default: max_age from config)")
	cmd.Flags().Duration("interval", 0, "repeat the sweep at this interval until interrupted")
	return cmd
}

func (a *App) runCleanup(cmd *cobra.Command, args []string) error {
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{a.cfg.OutDir}
	}
	maxAge := a.cfg.MaxAge
	if cmd.Flags().Changed("max-age") {
		maxAge, _ = cmd.Flags().GetDuration("max-age")
	}
	interval, _ := cmd.Flags().GetDuration("interval")

	s := &cleanup.Sweeper{MaxAge: maxAge, Out: a.Stdout, Logger: a.logger, Now: a.Now}
	if interval > 0 {
		return s.Watch(cmd.Context(), interval, dirs...)
	}
	sum, err := s.Clean(dirs...)
	a.logger.Debug("cleanup finished", "files", sum.Files, "dirs", sum.Dirs)
	return err
}
