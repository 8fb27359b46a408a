// Package batch provides the diffkit batch command for comparing many file
// pairs at once.
package batch

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/klytics/diffkit/internal/batch"
	"github.com/klytics/diffkit/internal/config"
	"github.com/klytics/diffkit/internal/input"
	"github.com/klytics/diffkit/internal/output"
	"github.com/klytics/diffkit/internal/progress"
)

type summary struct {
	Pairs     int            `json:"pairs"`
	Changed   int            `json:"changed"`
	Unchanged int            `json:"unchanged"`
	Failed    int            `json:"failed"`
	Results   []batch.Result `json:"results"`
}

// NewCommand returns the batch subcommand.
func NewCommand() *cobra.Command {
	var (
		manifest    string
		concurrency int
		changedOnly bool
		exitCode    bool
	)

	cmd := &cobra.Command{
		Use:   "batch [<original-dir> <modified-dir>]",
		Short: "Compare many file pairs in parallel",
		Long: `Diffs every pair listed in a YAML manifest, or every file found under two
directory trees matched by relative path. A file present on one side only
is compared against empty text. A pair that fails does not stop the others.

Manifest format:
  pairs:
    - original: v1/app.conf
      modified: v2/app.conf

Examples:
  diffkit batch release-1.0/ release-1.1/
  diffkit batch --manifest pairs.yaml --concurrency 8 --json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if manifest != "" && len(args) != 0 {
				return fmt.Errorf("use either --manifest or two directories, not both")
			}
			if manifest == "" && len(args) != 2 {
				return fmt.Errorf("expected two directories or --manifest")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}
			if !cmd.Flags().Changed("concurrency") {
				concurrency = cfg.Batch.Concurrency
			}

			loader := input.NewLoader(cfg.MaxLines)
			pairs, err := collectPairs(loader.Fs, manifest, args)
			if err != nil {
				return err
			}
			if len(pairs) == 0 {
				return fmt.Errorf("no files found to compare")
			}

			bar := progress.New("Comparing", len(pairs))
			if jsonFlag {
				bar.Enabled = false
			}
			results, err := batch.Run(cmd.Context(), pairs, batch.Options{
				Loader:      loader,
				Concurrency: concurrency,
				OnResult: func(r batch.Result) {
					bar.Increment(filepath.Base(r.Modified))
				},
			})
			if err != nil {
				return err
			}

			s := summarize(results)
			bar.Finish(fmt.Sprintf("Compared %d pairs", s.Pairs))

			if jsonFlag {
				if err := output.PrintJSON(cmd.OutOrStdout(), "batch", s); err != nil {
					return err
				}
			} else {
				printResults(cmd.OutOrStdout(), s, changedOnly)
			}

			if s.Failed > 0 {
				return &output.ExitError{Code: output.ExitSystemError, Err: fmt.Errorf("%d of %d pairs failed", s.Failed, s.Pairs)}
			}
			if exitCode && s.Changed > 0 {
				return output.ErrChanges
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "YAML file listing the pairs to compare")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of pairs compared in parallel")
	cmd.Flags().BoolVar(&changedOnly, "changed-only", false, "List only pairs that differ or failed")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 when any pair differs")

	return cmd
}

func collectPairs(fs afero.Fs, manifest string, args []string) ([]batch.Pair, error) {
	if manifest != "" {
		return batch.LoadManifest(fs, manifest)
	}
	return batch.PairDirs(fs, args[0], args[1])
}

func summarize(results []batch.Result) summary {
	s := summary{Pairs: len(results), Results: results}
	for _, r := range results {
		switch {
		case r.Error != "":
			s.Failed++
		case r.Changed():
			s.Changed++
		default:
			s.Unchanged++
		}
	}
	return s
}

func printResults(w io.Writer, s summary, changedOnly bool) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.FgHiBlack)

	for _, r := range s.Results {
		switch {
		case r.Error != "":
			red.Fprintf(w, "! %s: %s\n", r.Modified, r.Error)
		case r.Changed():
			yellow.Fprintf(w, "M %s  (+%d -%d)\n", r.Modified, r.Stats.Added, r.Stats.Removed)
		case !changedOnly:
			dim.Fprintf(w, "= %s\n", r.Modified)
		}
	}

	fmt.Fprintf(w, "\nCompared %d pairs. %d changed, %d unchanged, %d failed.\n",
		s.Pairs, s.Changed, s.Unchanged, s.Failed)
}
