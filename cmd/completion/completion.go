// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

type shellInfo struct {
	install string
	gen     func(root *cobra.Command, cmd *cobra.Command) error
}

var shells = map[string]shellInfo{
	"bash": {
		install: "diffkit completion bash > /etc/bash_completion.d/diffkit",
		gen: func(root, cmd *cobra.Command) error {
			return root.GenBashCompletionV2(cmd.OutOrStdout(), true)
		},
	},
	"zsh": {
		install: "diffkit completion zsh > ~/.zsh/completions/_diffkit",
		gen: func(root, cmd *cobra.Command) error {
			return root.GenZshCompletion(cmd.OutOrStdout())
		},
	},
	"fish": {
		install: "diffkit completion fish > ~/.config/fish/completions/diffkit.fish",
		gen: func(root, cmd *cobra.Command) error {
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		},
	},
	"powershell": {
		install: "diffkit completion powershell >> $PROFILE",
		gen: func(root, cmd *cobra.Command) error {
			return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		},
	},
}

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for diffkit.

Install instructions:
  Bash:       diffkit completion bash > /etc/bash_completion.d/diffkit
              echo 'source <(diffkit completion bash)' >> ~/.bashrc
  Zsh:        diffkit completion zsh > ~/.zsh/completions/_diffkit
  Fish:       diffkit completion fish > ~/.config/fish/completions/diffkit.fish
  PowerShell: diffkit completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, ok := shells[args[0]]
			if !ok {
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# diffkit %s completion\n# Install: %s\n\n", args[0], sh.install)
			return sh.gen(rootCmd, cmd)
		},
	}
	return cmd
}
