// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cli builds the cobra commands shared by the standalone converter
// binaries and the docconv umbrella.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docconv/internal/convert"
	"github.com/pdiddy/docconv/internal/history"
	"github.com/pdiddy/docconv/pkg/types"
)

// ErrUsage reports a wrong number of positional arguments.
var ErrUsage = errors.New("wrong number of arguments")

type usageError struct {
	line string
}

func (e *usageError) Error() string { return "Usage: " + e.line }

func (e *usageError) Is(target error) bool { return target == ErrUsage }

// argsBetween accepts min to max positional arguments; max < 0 means no
// upper bound.
func argsBetween(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < min || (max >= 0 && len(args) > max) {
			return &usageError{line: cmd.UseLine()}
		}
		return nil
	}
}

// App holds the process-wide state every command reads: output streams,
// the loaded configuration, and the diagnostic logger.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	// Options seeds each converter. Config, Stdout, Stderr and Logger are
	// overwritten from the loaded configuration before use.
	Options convert.Options

	// Now is the clock used for history timestamps.
	Now func() time.Time

	cfgFile string
	verbose bool
	cfg     types.Config
	logger  *slog.Logger
}

// New returns an App writing to stdout and stderr.
func New(stdout, stderr io.Writer) *App {
	return &App{
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
		cfg:    types.DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
}

// Bind installs the persistent --config and --verbose flags on root and
// loads the configuration before any of its commands run.
func (a *App) Bind(root *cobra.Command) {
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./docconv.yaml or ~/.config/docconv/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log diagnostics at debug level")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.load()
	}
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.CompletionOptions.DisableDefaultCmd = true
}

// Execute binds root, runs it with args under a context cancelled by
// SIGINT or SIGTERM, and returns the process exit code.
func (a *App) Execute(root *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.ExecuteContext(ctx, root, args)
}

// ExecuteContext is Execute with a caller-supplied context.
func (a *App) ExecuteContext(ctx context.Context, root *cobra.Command, args []string) int {
	a.Bind(root)
	root.SetArgs(args)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintln(a.Stderr, err)
		} else {
			fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// Config returns the configuration loaded for the running command.
func (a *App) Config() types.Config { return a.cfg }

func (a *App) converter() *convert.Converter {
	opts := a.Options
	opts.Config = a.cfg
	opts.Stdout = a.Stdout
	opts.Stderr = a.Stderr
	opts.Logger = a.logger
	return convert.New(opts)
}

// run executes one conversion and records it in the history store.
func (a *App) run(cmd *cobra.Command, tool, input string, fn func(ctx context.Context, c *convert.Converter) ([]string, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := a.Now()
	outputs, err := fn(ctx, a.converter())
	a.record(context.WithoutCancel(ctx), tool, input, outputs, err, start)
	return err
}

// record appends a history row when history_db is set. Failures are logged
// and never change the command's outcome.
func (a *App) record(ctx context.Context, tool, input string, outputs []string, runErr error, start time.Time) {
	if a.cfg.HistoryDB == "" {
		return
	}
	finished := a.Now()
	c := types.Conversion{
		Tool:       tool,
		Input:      input,
		Status:     types.ConversionDone,
		Duration:   finished.Sub(start),
		FinishedAt: finished,
	}
	if runErr != nil {
		c.Status = types.ConversionFailed
		c.Error = runErr.Error()
	} else {
		c.Outputs = outputs
	}

	store, err := history.Open(a.cfg.HistoryDB)
	if err != nil {
		a.logger.Warn("history unavailable", "db", a.cfg.HistoryDB, "error", err)
		return
	}
	defer store.Close()
	if _, err := store.Record(ctx, c); err != nil {
		a.logger.Warn("history write failed", "db", a.cfg.HistoryDB, "error", err)
	}
}

func joinInputs(inputs []string) string {
	return strings.Join(inputs, " ")
}
