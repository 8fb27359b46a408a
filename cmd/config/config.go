// Package config provides CLI commands for configuration management.
package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/klytics/diffkit/internal/config"
	"github.com/klytics/diffkit/internal/output"
)

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage diffkit configuration",
		Long:  "Interactive setup, view, and modify diffkit settings.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if root := cmd.Root(); root != cmd && root.PersistentPreRunE != nil {
				return root.PersistentPreRunE(cmd, args)
			}
			if _, err := config.Load(); err != nil {
				logrus.Warnf("could not load configuration: %v", err)
			}
			return nil
		},
	}

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newSetCommand())
	cmd.AddCommand(newGetCommand())
	cmd.AddCommand(newResetCommand())
	cmd.AddCommand(newPathCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newEnvCommand())

	return cmd
}

func newInitCommand() *cobra.Command {
	var noInteractive bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactive setup wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if noInteractive {
				return config.WizardNonInteractive()
			}
			return config.Wizard(cmd.InOrStdin())
		},
	}
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Skip prompts, use defaults")
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				values := make(map[string]string)
				for _, k := range config.Keys() {
					values[k] = config.Get(k)
				}
				return output.PrintJSON(cmd.OutOrStdout(), "config show", values)
			}

			fmt.Fprint(cmd.OutOrStdout(), config.ShowConfig())
			return nil
		},
	}
}

func checkKey(key string) error {
	if !slices.Contains(config.Keys(), key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(config.Keys(), ", "))
	}
	return nil
}

func newSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value. The value is checked against the key's type
before it is saved. Negative numbers are accepted as values:

  diffkit config set context -1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKey(args[0]); err != nil {
				return err
			}
			if err := config.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
	// Stop flag parsing at the key so "-1" reaches Args as a value.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKey(args[0]); err != nil {
				return err
			}
			val := config.Get(args[0])
			if val == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: (not set)\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], val)
			}
			return nil
		},
	}
}

func newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ResetConfig(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults")
			return nil
		},
	}
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			issues := config.Validate()

			errors := 0
			warnings := 0
			for _, issue := range issues {
				switch issue.Severity {
				case "error":
					errors++
				case "warning":
					warnings++
				}
			}

			if jsonFlag {
				if err := output.PrintJSON(out, "config validate", issues); err != nil {
					return err
				}
			} else if errors == 0 && warnings == 0 {
				color.New(color.FgGreen).Fprintln(out, "Configuration is valid")
			} else {
				fmt.Fprintf(out, "Config validation: %d errors, %d warnings\n\n", errors, warnings)

				for _, issue := range issues {
					switch issue.Severity {
					case "error":
						color.New(color.FgRed).Fprintf(out, "  %s\n", issue.Message)
					case "warning":
						color.New(color.FgYellow).Fprintf(out, "  %s\n", issue.Message)
					case "info":
						color.New(color.FgGreen).Fprintf(out, "  %s\n", issue.Message)
					}
					if issue.Fix != "" {
						fmt.Fprintf(out, "   Fix: %s\n", issue.Fix)
					}
				}
			}

			if errors > 0 {
				return &output.ExitError{Code: output.ExitUserError}
			}
			return nil
		},
	}
}

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Export configuration as environment variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			env := config.ToEnv()

			if jsonFlag {
				return output.PrintJSON(cmd.OutOrStdout(), "config env", env)
			}

			// Sort keys for deterministic output
			keys := make([]string, 0, len(env))
			for k := range env {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "export %s=%q\n", k, env[k])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "# Add these to your ~/.zshrc or ~/.bashrc")
			return nil
		},
	}
}
