// Package shell provides the interactive diffkit REPL.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"

	"github.com/klytics/diffkit/internal/config"
)

// CommandRunner executes a diffkit command and returns its output.
// This is set by the cmd/shell package to avoid import cycles.
type CommandRunner func(ctx context.Context, args []string, stdout, stderr io.Writer) error

// DefaultRunner is the command runner used by the shell session.
var DefaultRunner CommandRunner

// Session manages an interactive diffkit shell session.
type Session struct {
	// Format and Context are added to diff commands that do not set them.
	Format  string
	Context int // < 0 means unset

	LastOutput     string
	CommandHistory []string
	HistoryFile    string
	StartTime      time.Time

	// KnownCommands is the list of top-level commands for completion.
	KnownCommands []string
}

// NewSession creates a new interactive session.
func NewSession() (*Session, error) {
	histFile := filepath.Join(config.Dir(), "shell_history")

	// Ensure parent dir exists
	os.MkdirAll(filepath.Dir(histFile), 0755)

	return &Session{
		Context:     -1,
		HistoryFile: histFile,
		StartTime:   time.Now(),
		KnownCommands: []string{
			"diff", "batch", "config", "version",
			"help", "exit", "quit", "history", "set", "unset",
		},
	}, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	if DefaultRunner == nil {
		return fmt.Errorf("shell runner not configured")
	}

	completer := readline.NewPrefixCompleter(s.buildCompleter()...)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "diffkit> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("diffkit interactive shell")
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.CommandHistory = append(s.CommandHistory, line)

		switch {
		case line == "exit" || line == "quit":
			elapsed := time.Since(s.StartTime)
			fmt.Printf("\nSession ended. %d commands run in %s.\n",
				len(s.CommandHistory)-1, formatDuration(elapsed))
			return nil
		case line == "help":
			s.printHelp()
		case line == "history":
			for i, cmd := range s.CommandHistory {
				fmt.Printf("  %d  %s\n", i+1, cmd)
			}
		case strings.HasPrefix(line, "set ") || strings.HasPrefix(line, "unset "):
			msg, err := s.Set(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			} else {
				fmt.Println(msg)
			}
		default:
			output, err := s.Eval(ctx, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			} else if output != "" {
				fmt.Print(output)
				if !strings.HasSuffix(output, "\n") {
					fmt.Println()
				}
			}
		}
	}

	return nil
}

// Set applies a "set <key> <value>" or "unset <key>" line to the session.
func (s *Session) Set(line string) (string, error) {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 2 && fields[0] == "unset":
		switch fields[1] {
		case "format":
			s.Format = ""
		case "context":
			s.Context = -1
		default:
			return "", fmt.Errorf("unknown setting %q (format, context)", fields[1])
		}
		return fmt.Sprintf("Unset %s", fields[1]), nil
	case len(fields) == 3 && fields[0] == "set":
		switch fields[1] {
		case "format":
			s.Format = fields[2]
		case "context":
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return "", fmt.Errorf("context must be a non-negative number, got %q", fields[2])
			}
			s.Context = n
		default:
			return "", fmt.Errorf("unknown setting %q (format, context)", fields[1])
		}
		return fmt.Sprintf("Default %s: %s", fields[1], fields[2]), nil
	}
	return "", fmt.Errorf("usage: set <format|context> <value>, unset <format|context>")
}

// Eval runs a single command string and returns its output.
func (s *Session) Eval(ctx context.Context, command string) (string, error) {
	if DefaultRunner == nil {
		return "", fmt.Errorf("shell runner not configured")
	}

	args, err := shellquote.Split(command)
	if err != nil {
		return "", fmt.Errorf("could not parse command: %w", err)
	}
	if len(args) == 0 {
		return "", nil
	}
	args = s.withDefaults(args)

	var stdout, stderr bytes.Buffer
	err = DefaultRunner(ctx, args, &stdout, &stderr)

	output := stdout.String()
	s.LastOutput = output

	if err != nil {
		if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
			return output, fmt.Errorf("%w: %s", err, errOut)
		}
	}

	return output, err
}

func (s *Session) withDefaults(args []string) []string {
	if args[0] != "diff" {
		return args
	}
	if s.Format != "" && !hasFlag(args, "--format", "-f") {
		args = append(args, "--format", s.Format)
	}
	if s.Context >= 0 && !hasFlag(args, "--context", "-C") {
		args = append(args, "--context", strconv.Itoa(s.Context))
	}
	return args
}

func hasFlag(args []string, names ...string) bool {
	for _, a := range args {
		for _, n := range names {
			if a == n || strings.HasPrefix(a, n+"=") {
				return true
			}
		}
	}
	return false
}

// Complete returns tab-completion candidates for the given input.
func (s *Session) Complete(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return s.KnownCommands
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return s.KnownCommands
	}

	// Complete top-level command
	if len(parts) == 1 && !strings.HasSuffix(input, " ") {
		prefix := parts[0]
		var matches []string
		for _, cmd := range s.KnownCommands {
			if strings.HasPrefix(cmd, prefix) {
				matches = append(matches, cmd)
			}
		}
		sort.Strings(matches)
		return matches
	}

	// For flags
	if strings.HasPrefix(parts[len(parts)-1], "-") {
		return s.flagsFor(parts[0])
	}

	// For subcommands, return common subcommands based on parent
	subcommands := s.subcommandsFor(parts[0])
	if len(parts) == 2 {
		prefix := parts[1]
		var matches []string
		for _, sub := range subcommands {
			if strings.HasPrefix(sub, prefix) {
				matches = append(matches, sub)
			}
		}
		return matches
	}

	return nil
}

func (s *Session) subcommandsFor(parent string) []string {
	subs := map[string][]string{
		"config": {"init", "show", "get", "set", "reset", "path", "validate", "env"},
		"set":    {"format", "context"},
		"unset":  {"format", "context"},
	}
	return subs[parent]
}

func (s *Session) flagsFor(parent string) []string {
	switch parent {
	case "diff":
		return []string{"--format", "--context", "--line-numbers", "--xlsx", "--exit-code", "--json", "--no-color"}
	case "batch":
		return []string{"--manifest", "--concurrency", "--json"}
	}
	return []string{"--json", "--verbose", "--help"}
}

func (s *Session) printHelp() {
	fmt.Println("Available commands:")
	fmt.Println()
	fmt.Println("  diff <original> <modified>   compare two files")
	fmt.Println("  batch <old-dir> <new-dir>    compare two directory trees")
	fmt.Println("  config, version")
	fmt.Println()
	fmt.Println("Shell commands:")
	fmt.Println("  help                  show this help")
	fmt.Println("  history               show command history")
	fmt.Println("  set format <name>     default --format for diff")
	fmt.Println("  set context <n>       default --context for diff")
	fmt.Println("  unset <format|context>")
	fmt.Println("  exit                  exit the shell")
}

func (s *Session) buildCompleter() []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range s.KnownCommands {
		subs := s.subcommandsFor(cmd)
		if len(subs) > 0 {
			var subItems []readline.PrefixCompleterInterface
			for _, sub := range subs {
				subItems = append(subItems, readline.PcItem(sub))
			}
			items = append(items, readline.PcItem(cmd, subItems...))
		} else {
			items = append(items, readline.PcItem(cmd))
		}
	}
	return items
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
