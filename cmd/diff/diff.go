// Package diff provides the diffkit diff command for comparing two texts.
package diff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/klytics/diffkit/internal/config"
	"github.com/klytics/diffkit/internal/input"
	"github.com/klytics/diffkit/internal/linediff"
	"github.com/klytics/diffkit/internal/output"
	"github.com/klytics/diffkit/internal/render"
	"github.com/klytics/diffkit/internal/report"
	"github.com/klytics/diffkit/internal/unified"
)

// NewCommand returns the diff command.
func NewCommand() *cobra.Command {
	var (
		format       string
		contextLines int
		lineNumbers  bool
		xlsxPath     string
		exitCode     bool
	)

	cmd := &cobra.Command{
		Use:   "diff <original> <modified>",
		Short: "Compare two text files line by line",
		Long: `Computes a longest-common-subsequence diff of two texts and prints every
line as unchanged, removed or added. Use "-" to read one side from stdin.

Formats: full (default), unified, stats, json, yaml

Examples:
  diffkit diff old.txt new.txt
  diffkit diff old.txt new.txt --format unified -C 1
  git show HEAD:main.go | diffkit diff - main.go --line-numbers
  diffkit diff old.txt new.txt --xlsx changes.xlsx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Format
			}
			if !cmd.Flags().Changed("context") {
				contextLines = cfg.Context
			}
			if jsonFlag {
				format = config.FormatJSON
			}
			if !slices.Contains(config.Formats, format) {
				return fmt.Errorf("unknown format %q (supported: %s)", format, strings.Join(config.Formats, ", "))
			}
			if args[0] == input.StdinName && args[1] == input.StdinName {
				return fmt.Errorf("only one side can be read from stdin")
			}

			loader := input.NewLoader(cfg.MaxLines)
			loader.Stdin = cmd.InOrStdin()

			original, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			modified, err := loader.Load(args[1])
			if err != nil {
				return err
			}

			entries := linediff.Diff(original.Content, modified.Content)
			doc := report.New(original.Name, modified.Name, entries)
			logrus.Debugf("diff %s (%d lines) %s (%d lines): %s",
				original.Name, original.Lines, modified.Name, modified.Lines, doc.Stats)

			if xlsxPath != "" {
				if err := report.WriteXLSX(xlsxPath, doc); err != nil {
					return err
				}
				logrus.Infof("wrote %s", xlsxPath)
			}

			paged := cfg.Pager && (format == config.FormatFull || format == config.FormatUnified)
			out := output.NewWriter(cmd.OutOrStdout(), paged)
			if err := write(out, format, doc, render.Options{
				OldName:     original.Name,
				NewName:     modified.Name,
				Context:     contextLines,
				LineNumbers: lineNumbers,
			}); err != nil {
				return err
			}
			if err := out.Flush(); err != nil {
				return err
			}

			if exitCode && !doc.Stats.NoChanges() {
				return output.ErrChanges
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatFull, "Output format: "+strings.Join(config.Formats, " | "))
	cmd.Flags().IntVarP(&contextLines, "context", "C", 3, "Context lines around each change (unified format)")
	cmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", false, "Show old and new line numbers (full format)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also export the diff as an Excel workbook")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 when the inputs differ")

	return cmd
}

// write renders doc in format. Unified output without color is plain patch
// text with no summary line.
func write(out *output.Writer, format string, doc *report.Document, opts render.Options) error {
	switch format {
	case config.FormatUnified:
		if color.NoColor {
			return unified.Write(out, opts.OldName, opts.NewName, doc.Entries, opts.Context)
		}
		return render.Unified(out, doc.Entries, opts)
	case config.FormatStats:
		_, err := fmt.Fprintln(out, doc.Stats)
		return err
	case config.FormatJSON:
		return output.PrintJSON(out, "diff", doc.WithHunks(opts.Context))
	case config.FormatYAML:
		return report.WriteYAML(out, doc.WithHunks(opts.Context))
	}
	return render.Full(out, doc.Entries, opts)
}
