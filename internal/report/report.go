// Package report exports an edit script as a structured document.
package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/klytics/diffkit/internal/linediff"
	"github.com/klytics/diffkit/internal/unified"
)

// Document is the exported form of one diff.
type Document struct {
	Original string           `json:"original" yaml:"original"`
	Modified string           `json:"modified" yaml:"modified"`
	Stats    linediff.Stats   `json:"stats" yaml:"stats"`
	Entries  []linediff.Entry `json:"entries" yaml:"entries"`
	Hunks    []unified.Hunk   `json:"hunks,omitempty" yaml:"hunks,omitempty"`
}

// New builds a document from an edit script.
func New(original, modified string, entries []linediff.Entry) *Document {
	return &Document{
		Original: original,
		Modified: modified,
		Stats:    linediff.Count(entries),
		Entries:  entries,
	}
}

// WithHunks attaches unified hunks computed with the given context.
func (d *Document) WithHunks(context int) *Document {
	d.Hunks = unified.Hunks(d.Entries, context)
	return d
}

// WriteYAML encodes the document as YAML.
func WriteYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not encode YAML: %w", err)
	}
	return enc.Close()
}
