// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docconv/internal/history"
	"github.com/pdiddy/docconv/pkg/types"
)

var errHistoryDisabled = errors.New("history is disabled: set history_db in the config file or DOCCONV_HISTORY_DB")

// HistoryCommand returns `history`, which lists or exports recorded runs.
func (a *App) HistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or export recorded conversions",
		Long: `History reads the conversions recorded in history_db, newest first.

Use --export yaml or --export json to write every matching record, to
--out when given or to stdout otherwise.`,
		Args: argsBetween(0, 0),
		RunE: a.runHistory,
	}
	cmd.Flags().Int("limit", 20, "maximum number of records to list")
	cmd.Flags().String("tool", "", "only show records for this converter")
	cmd.Flags().Bool("json", false, "list as JSON instead of a table")
	cmd.Flags().String("export", "", "export format: yaml or json")
	cmd.Flags().String("out", "", "export file (default: stdout)")
	return cmd
}

func (a *App) runHistory(cmd *cobra.Command, args []string) (err error) {
	if a.cfg.HistoryDB == "" {
		return errHistoryDisabled
	}
	limit, _ := cmd.Flags().GetInt("limit")
	tool, _ := cmd.Flags().GetString("tool")
	asJSON, _ := cmd.Flags().GetBool("json")
	export, _ := cmd.Flags().GetString("export")
	outPath, _ := cmd.Flags().GetString("out")

	export = strings.ToLower(export)
	if export != "" && export != "yaml" && export != "json" {
		return fmt.Errorf("unsupported export format %q (want yaml or json)", export)
	}

	store, err := history.Open(a.cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	q := history.Query{Tool: tool, Limit: limit}

	if export != "" {
		w := a.Stdout
		if outPath != "" {
			f, ferr := os.Create(outPath)
			if ferr != nil {
				return fmt.Errorf("creating export file: %w", ferr)
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()
			w = f
		}
		q.Limit = 0
		if cmd.Flags().Changed("limit") {
			q.Limit = limit
		}
		if export == "yaml" {
			err = store.ExportYAML(ctx, w, q)
		} else {
			err = store.ExportJSON(ctx, w, q)
		}
		if err == nil && outPath != "" {
			fmt.Fprintf(a.Stdout, "Exported history to %s\n", outPath)
		}
		return err
	}

	if asJSON {
		return store.ExportJSON(ctx, a.Stdout, q)
	}

	convs, err := store.List(ctx, q)
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		fmt.Fprintln(a.Stdout, "No conversions recorded.")
		return nil
	}
	return writeTable(a.Stdout, convs)
}

func writeTable(w io.Writer, convs []types.Conversion) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTOOL\tSTATUS\tDURATION\tFINISHED\tINPUT")
	for _, c := range convs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Tool, c.Status, c.Duration.Round(time.Millisecond),
			c.FinishedAt.Local().Format("2006-01-02 15:04:05"), c.Input)
	}
	return tw.Flush()
}
