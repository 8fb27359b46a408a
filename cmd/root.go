// Package cmd contains all CLI commands for the diffkit binary.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/klytics/diffkit/cmd/batch"
	"github.com/klytics/diffkit/cmd/completion"
	cmdconfig "github.com/klytics/diffkit/cmd/config"
	"github.com/klytics/diffkit/cmd/diff"
	cmdshell "github.com/klytics/diffkit/cmd/shell"
	"github.com/klytics/diffkit/cmd/version"
	cmdwatch "github.com/klytics/diffkit/cmd/watch"
	"github.com/klytics/diffkit/internal/config"
	"github.com/klytics/diffkit/internal/logging"
	"github.com/klytics/diffkit/internal/output"
	"github.com/klytics/diffkit/internal/shell"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

func init() {
	shell.DefaultRunner = runInShell
}

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "diffkit",
		Short: "Line-by-line text diffs from the terminal",
		Long: `diffkit compares texts line by line using a longest common subsequence and
reports every line as unchanged, removed or added.

Compare two files, whole directory trees, or keep a pair under watch.
Results print as colored text, unified hunks, JSON, YAML or an Excel workbook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A broken config must not lock out "config set/reset", so fall
			// back to defaults and warn.
			cfg, loadErr := config.Load()
			if loadErr != nil {
				cfg = config.Default()
			}
			if noColor || !cfg.Color {
				color.NoColor = true
			}
			if err := logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel, verbose); err != nil {
				logging.Setup(cmd.ErrOrStderr(), config.Default().LogLevel, verbose)
				logrus.Warnf("%v, using %s", err, config.Default().LogLevel)
			}
			if loadErr != nil {
				logrus.Warnf("could not load configuration, using defaults: %v", loadErr)
			}
			return nil
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(diff.NewCommand())
	rootCmd.AddCommand(batch.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// runInShell executes one shell line against a fresh command tree so flag
// values never leak between lines.
func runInShell(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	switch args[0] {
	case "shell", "watch":
		return fmt.Errorf("%s cannot be run inside the shell", args[0])
	}
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && err.Error() == "" {
		return nil
	}
	return err
}

// run executes rootCmd and reports a failure on errOut, or as a JSON error
// envelope on stdout with --json. It returns the exit code.
func run(ctx context.Context, rootCmd *cobra.Command, errOut io.Writer) (int, error) {
	c, err := rootCmd.ExecuteContextC(ctx)
	code := output.Code(err)
	if err == nil || err.Error() == "" {
		return code, err
	}
	if jsonOutput {
		name := rootCmd.Name()
		if c != nil {
			name = c.Name()
		}
		output.PrintJSONError(rootCmd.OutOrStdout(), name, err, code)
	} else {
		fmt.Fprintf(errOut, "Error: %s\n", err)
	}
	return code, err
}

// Execute runs the root command and exits with the command's status code.
func Execute() {
	rootCmd := NewRootCommand()
	code, _ := run(context.Background(), rootCmd, os.Stderr)
	os.Exit(code)
}
