// Package watch provides the "diffkit watch" command, which re-diffs two
// files whenever either changes.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/diffkit/internal/config"
	"github.com/klytics/diffkit/internal/input"
	"github.com/klytics/diffkit/internal/output"
	"github.com/klytics/diffkit/internal/render"
	"github.com/klytics/diffkit/internal/report"
	w "github.com/klytics/diffkit/internal/watch"
)

var watchFormats = []string{config.FormatFull, config.FormatUnified, config.FormatStats}

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var (
		format       string
		contextLines int
		debounce     int
	)

	cmd := &cobra.Command{
		Use:   "watch <original> <modified>",
		Short: "Re-diff two files every time either one changes",
		Long: `Prints a diff of the two files, then prints a fresh diff each time one of
them is written, created, renamed or removed. A missing file counts as empty.

Example:
  diffkit watch config.prod.yaml config.staging.yaml --format unified`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Format
				if !slices.Contains(watchFormats, format) {
					format = config.FormatFull
				}
			}
			if !cmd.Flags().Changed("context") {
				contextLines = cfg.Context
			}
			if !cmd.Flags().Changed("debounce") {
				debounce = cfg.Watch.DebounceMs
			}
			if !slices.Contains(watchFormats, format) {
				return fmt.Errorf("unsupported watch format %q (supported: full, unified, stats)", format)
			}
			for _, p := range args {
				if p == input.StdinName {
					return fmt.Errorf("cannot watch standard input")
				}
			}

			watcher, err := w.New(w.Config{
				Original: args[0],
				Modified: args[1],
				Debounce: time.Duration(debounce) * time.Millisecond,
			}, input.NewLoader(cfg.MaxLines))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var mu sync.Mutex
			watcher.Handler = func(res w.Result) {
				mu.Lock()
				defer mu.Unlock()
				if jsonFlag {
					printJSON(out, args, res)
					return
				}
				printRun(out, args, res, format, contextLines)
			}

			if !jsonFlag {
				fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s and %s. Press Ctrl+C to stop.\n", args[0], args[1])
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// Handle signals
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case <-sigCh:
					fmt.Fprintln(cmd.ErrOrStderr(), "\nStopping watcher...")
					cancel()
				case <-ctx.Done():
				}
			}()

			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatFull, "Output format: full | unified | stats")
	cmd.Flags().IntVarP(&contextLines, "context", "C", 3, "Context lines around each change (unified format)")
	cmd.Flags().IntVar(&debounce, "debounce", 300, "Debounce interval in milliseconds")

	return cmd
}

func printRun(out io.Writer, args []string, res w.Result, format string, contextLines int) {
	stamp := res.Time.Format("15:04:05")
	header := color.New(color.Bold)
	if res.Trigger == "" {
		header.Fprintf(out, "[%s] %s vs %s\n", stamp, args[0], args[1])
	} else {
		header.Fprintf(out, "[%s] changed: %s\n", stamp, res.Trigger)
	}

	if res.Err != nil {
		color.New(color.FgRed).Fprintf(out, "Error: %s\n\n", res.Err)
		return
	}

	opts := render.Options{OldName: args[0], NewName: args[1], Context: contextLines}
	switch format {
	case config.FormatUnified:
		render.Unified(out, res.Entries, opts)
	case config.FormatStats:
		fmt.Fprintln(out, res.Stats)
	default:
		render.Full(out, res.Entries, opts)
	}
	fmt.Fprintln(out)
}

func printJSON(out io.Writer, args []string, res w.Result) {
	if res.Err != nil {
		output.PrintJSONError(out, "watch", res.Err, output.Code(res.Err))
		return
	}
	doc := report.New(args[0], args[1], res.Entries)
	output.PrintJSON(out, "watch", struct {
		Time    time.Time `json:"time"`
		Trigger string    `json:"trigger,omitempty"`
		*report.Document
	}{res.Time, res.Trigger, doc})
}
