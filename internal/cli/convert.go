// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docconv/internal/convert"
	"github.com/pdiddy/docconv/internal/office"
)

// ConvertCommand returns `convert <input>... <format>`, which routes each
// input through the built-in dispatch table or LibreOffice.
func (a *App) ConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input>... <format>",
		Short: "Convert files to a target format by extension",
		Long: `Convert picks a routine from the input extension and the target format
and writes <out-dir>/<name>_converted.<ext> for each input.

Built in: docx to html, txt, or pdf; txt to pdf; html/htm to docx or pdf;
csv to json; json to csv; pdf to docx, xlsx, csv, or pptx (doc, xls and ppt
targets are written as docx, xlsx and pptx). Any other pair is handed to a
headless LibreOffice when soffice or libreoffice is installed.`,
		Args:                  argsBetween(2, -1),
		DisableFlagsInUseLine: true,
		RunE:                  a.runConvert,
	}
	cmd.Flags().String("out-dir", "", "output directory (default: out_dir from config)")
	cmd.Flags().Bool("skip-existing", false, "skip inputs whose output already exists")
	return cmd
}

func (a *App) runConvert(cmd *cobra.Command, args []string) error {
	inputs, format := args[:len(args)-1], args[len(args)-1]
	outDir, _ := cmd.Flags().GetString("out-dir")
	skip, _ := cmd.Flags().GetBool("skip-existing")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.Options.Office == nil {
		if s, err := office.Detect(ctx, a.cfg.SofficeBin); err == nil {
			a.logger.Debug("office converter found", "bin", s.Name())
			a.Options.Office = s
		} else {
			a.logger.Debug("office converter unavailable", "error", err)
		}
	}

	return a.run(cmd, "convert", joinInputs(inputs), func(ctx context.Context, c *convert.Converter) ([]string, error) {
		result := c.ConvertBatch(ctx, inputs, format, outDir, skip, a.Stdout)
		if result.HasFailures() {
			return nil, fmt.Errorf("%d of %d input(s) failed", result.Failed, result.Total())
		}
		return result.Outputs, nil
	})
}
