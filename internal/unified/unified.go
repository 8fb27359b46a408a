// Package unified groups an edit script into unified-diff hunks.
package unified

import (
	"fmt"
	"io"
	"strings"

	"github.com/klytics/diffkit/internal/linediff"
)

// DefaultContext is the number of unchanged lines kept around each change
// when the caller passes a negative context.
const DefaultContext = 3

// Hunk is a contiguous run of changes with surrounding context.
type Hunk struct {
	OldStart int              `json:"oldStart" yaml:"oldStart"`
	OldCount int              `json:"oldCount" yaml:"oldCount"`
	NewStart int              `json:"newStart" yaml:"newStart"`
	NewCount int              `json:"newCount" yaml:"newCount"`
	Entries  []linediff.Entry `json:"lines" yaml:"lines"`
}

// Header returns the "@@ -a,b +c,d @@" range line. A side with no lines
// reports the line before the hunk as its start, as diff(1) does.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@", span(h.OldStart, h.OldCount), span(h.NewStart, h.NewCount))
}

func span(start, count int) string {
	if count == 0 {
		start--
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// Hunks groups entries into hunks with the given number of context lines.
// Changes separated by at most 2*context unchanged lines share a hunk. An
// edit script without changes has no hunks.
func Hunks(entries []linediff.Entry, context int) []Hunk {
	if context < 0 {
		context = DefaultContext
	}

	type change struct{ start, end int }
	var changes []change
	for i, e := range entries {
		if e.Kind == linediff.Unchanged {
			continue
		}
		if n := len(changes); n > 0 && i-changes[n-1].end <= 2*context {
			changes[n-1].end = i + 1
		} else {
			changes = append(changes, change{start: i, end: i + 1})
		}
	}

	hunks := make([]Hunk, 0, len(changes))
	for _, c := range changes {
		start := max(c.start-context, 0)
		end := min(c.end+context, len(entries))

		h := Hunk{Entries: entries[start:end]}
		h.OldStart, h.NewStart = startLines(entries, start)
		for _, e := range h.Entries {
			if e.Kind != linediff.Added {
				h.OldCount++
			}
			if e.Kind != linediff.Removed {
				h.NewCount++
			}
		}
		hunks = append(hunks, h)
	}
	return hunks
}

// startLines returns the old and new line numbers of entries[at], counting
// from the entries before it.
func startLines(entries []linediff.Entry, at int) (oldStart, newStart int) {
	oldStart, newStart = 1, 1
	for _, e := range entries[:at] {
		if e.Kind != linediff.Added {
			oldStart++
		}
		if e.Kind != linediff.Removed {
			newStart++
		}
	}
	return oldStart, newStart
}

// Prefix returns the one-character unified-diff gutter for a kind.
func Prefix(k linediff.Kind) string {
	switch k {
	case linediff.Added:
		return "+"
	case linediff.Removed:
		return "-"
	}
	return " "
}

// Write writes a plain unified diff of entries to w.
func Write(w io.Writer, oldName, newName string, entries []linediff.Entry, context int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n", oldName)
	fmt.Fprintf(&b, "+++ %s\n", newName)
	for _, h := range Hunks(entries, context) {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, e := range h.Entries {
			b.WriteString(Prefix(e.Kind))
			b.WriteString(e.Text)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
