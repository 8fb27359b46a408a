package output

import (
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ShouldPage returns true if content has more lines than the terminal.
func ShouldPage(content string, termHeight int) bool {
	if termHeight <= 0 {
		return false
	}
	lines := strings.Count(content, "\n")
	return lines > termHeight
}

// TerminalHeight returns the row count of the terminal behind f, or 0.
func TerminalHeight(f *os.File) int {
	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return height
}

// Page pipes content through the user's preferred pager (PAGER env, or "less -R").
func Page(content string) error {
	pager := os.Getenv("PAGER")
	args := []string{}
	if pager == "" {
		pager = "less"
		args = append(args, "-R") // keep colors
	}

	cmd := exec.Command(pager, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
