package linediff

import "fmt"

// Kind tags an entry of an edit script.
type Kind int

const (
	// Unchanged lines appear in both texts.
	Unchanged Kind = iota
	// Removed lines appear only in the original text.
	Removed
	// Added lines appear only in the modified text.
	Added
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Removed:
		return "removed"
	case Added:
		return "added"
	}
	return "unknown"
}

// MarshalText encodes the kind by name so JSON and YAML output stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name written by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "unchanged":
		*k = Unchanged
	case "removed":
		*k = Removed
	case "added":
		*k = Added
	default:
		return fmt.Errorf("unknown entry kind %q", b)
	}
	return nil
}

// Entry is one line of an edit script.
type Entry struct {
	Kind Kind   `json:"type" yaml:"type"`
	Text string `json:"line" yaml:"line"`
	// OldLine is the 1-based line number in the original text, or 0 for
	// Added entries.
	OldLine int `json:"oldLine,omitempty" yaml:"oldLine,omitempty"`
	// NewLine is the 1-based line number in the modified text, or 0 for
	// Removed entries.
	NewLine int `json:"newLine,omitempty" yaml:"newLine,omitempty"`
}

// Diff splits both texts into lines and returns the edit script that turns
// original into modified.
func Diff(original, modified string) []Entry {
	return Lines(SplitLines(original), SplitLines(modified))
}

// Lines returns the edit script that turns the original line sequence into
// the modified one. Every original line appears exactly once as Unchanged or
// Removed, every modified line exactly once as Unchanged or Added, and the
// number of Unchanged entries is the LCS length.
func Lines(original, modified []string) []Entry {
	t := buildTable(original, modified)

	i, j := len(original), len(modified)
	entries := make([]Entry, 0, i+j-t.length())
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && original[i-1] == modified[j-1]:
			entries = append(entries, Entry{Kind: Unchanged, Text: original[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || t.cell(i, j-1) >= t.cell(i-1, j)):
			entries = append(entries, Entry{Kind: Added, Text: modified[j-1]})
			j--
		default:
			entries = append(entries, Entry{Kind: Removed, Text: original[i-1]})
			i--
		}
	}

	for l, r := 0, len(entries)-1; l < r; l, r = l+1, r-1 {
		entries[l], entries[r] = entries[r], entries[l]
	}
	number(entries)
	return entries
}

func number(entries []Entry) {
	oldLine, newLine := 0, 0
	for k := range entries {
		e := &entries[k]
		if e.Kind != Added {
			oldLine++
			e.OldLine = oldLine
		}
		if e.Kind != Removed {
			newLine++
			e.NewLine = newLine
		}
	}
}
