// Package shell provides the "diffkit shell" interactive REPL command.
package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	shellpkg "github.com/klytics/diffkit/internal/shell"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var (
		evalCmd      string
		format       string
		contextLines int
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive diffkit shell",
		Long: `Start an interactive REPL with history and tab completion.

Session defaults set with "set format <name>" and "set context <n>" apply to
every diff command that does not pass those flags itself.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shellpkg.NewSession()
			if err != nil {
				return err
			}
			if format != "" {
				session.Format = format
			}
			if cmd.Flags().Changed("context") {
				session.Context = contextLines
			}
			if evalCmd != "" {
				output, err := session.Eval(cmd.Context(), evalCmd)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), output)
				return nil
			}
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&evalCmd, "eval", "", "Run a single command and exit")
	cmd.Flags().StringVar(&format, "format", "", "Default diff format for the session")
	cmd.Flags().IntVar(&contextLines, "context", 3, "Default diff context lines for the session")
	return cmd
}
