package linediff

import "fmt"

// Stats counts the entries of an edit script by kind.
type Stats struct {
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

// Count tallies entries by kind.
func Count(entries []Entry) Stats {
	var s Stats
	for _, e := range entries {
		switch e.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		default:
			s.Unchanged++
		}
	}
	return s
}

// NoChanges reports whether the script contains only unchanged lines.
func (s Stats) NoChanges() bool {
	return s.Added == 0 && s.Removed == 0
}

// OldLines is the line count of the original text.
func (s Stats) OldLines() int {
	return s.Unchanged + s.Removed
}

// NewLines is the line count of the modified text.
func (s Stats) NewLines() int {
	return s.Unchanged + s.Added
}

func (s Stats) String() string {
	return fmt.Sprintf("%d added, %d removed, %d unchanged", s.Added, s.Removed, s.Unchanged)
}
