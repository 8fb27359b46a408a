// Package render prints edit scripts to a terminal with color.
//
// Colors follow the fatih/color global switch, so callers disable them with
// color.NoColor (the --no-color flag does this).
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/klytics/diffkit/internal/linediff"
	"github.com/klytics/diffkit/internal/unified"
)

// Options controls how a diff is printed.
type Options struct {
	OldName     string
	NewName     string
	Context     int
	LineNumbers bool
}

var (
	dim   = color.New(color.FgHiBlack)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	cyan  = color.New(color.FgCyan)
)

func colorFor(k linediff.Kind) *color.Color {
	switch k {
	case linediff.Added:
		return green
	case linediff.Removed:
		return red
	}
	return dim
}

// Full prints every entry of the script followed by the summary line.
func Full(w io.Writer, entries []linediff.Entry, opts Options) error {
	width := 0
	if opts.LineNumbers {
		s := linediff.Count(entries)
		width = len(strconv.Itoa(max(s.OldLines(), s.NewLines())))
	}

	for _, e := range entries {
		c := colorFor(e.Kind)
		if opts.LineNumbers {
			if _, err := dim.Fprintf(w, "%*s %*s ", width, lineNumber(e.OldLine), width, lineNumber(e.NewLine)); err != nil {
				return err
			}
		}
		if _, err := c.Fprintf(w, "%s %s\n", unified.Prefix(e.Kind), e.Text); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return Summary(w, linediff.Count(entries))
}

func lineNumber(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Unified prints colored unified-diff hunks.
func Unified(w io.Writer, entries []linediff.Entry, opts Options) error {
	stats := linediff.Count(entries)

	red.Fprintf(w, "--- %s  (%d lines)\n", opts.OldName, stats.OldLines())
	green.Fprintf(w, "+++ %s  (%d lines)\n", opts.NewName, stats.NewLines())

	for _, h := range unified.Hunks(entries, opts.Context) {
		cyan.Fprintln(w, h.Header())
		for _, e := range h.Entries {
			if _, err := colorFor(e.Kind).Fprintf(w, "%s%s\n", unified.Prefix(e.Kind), e.Text); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return Summary(w, stats)
}

// Summary prints the added/removed counts, or "No changes".
func Summary(w io.Writer, stats linediff.Stats) error {
	_, err := fmt.Fprintln(w, summary(stats))
	return err
}

func summary(stats linediff.Stats) string {
	if stats.NoChanges() {
		return dim.Sprint("No changes")
	}
	return green.Sprintf("+%d added", stats.Added) + "  " + red.Sprintf("-%d removed", stats.Removed)
}
