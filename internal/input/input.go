// Package input acquires the texts handed to the diff engine and enforces
// the size bound the engine itself does not check.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// StdinName is the argument that selects standard input instead of a file.
const StdinName = "-"

var (
	// ErrTooLarge is returned when a text has more lines than the loader
	// allows. The diff table grows with the product of both line counts.
	ErrTooLarge = errors.New("input exceeds line limit")
	// ErrBinary is returned for content containing NUL bytes.
	ErrBinary = errors.New("binary content is not supported")
)

// Text is a loaded input.
type Text struct {
	Name    string
	Content string
	Lines   int
}

// Loader reads texts from a filesystem or standard input.
type Loader struct {
	Fs       afero.Fs
	Stdin    io.Reader
	MaxLines int // <= 0 disables the limit
}

// NewLoader returns a loader backed by the OS filesystem and os.Stdin.
func NewLoader(maxLines int) *Loader {
	return &Loader{
		Fs:       afero.NewOsFs(),
		Stdin:    os.Stdin,
		MaxLines: maxLines,
	}
}

// Load reads the named file, or standard input when name is "-".
func (l *Loader) Load(name string) (*Text, error) {
	var (
		data []byte
		err  error
	)
	if name == StdinName {
		if l.Stdin == nil {
			return nil, fmt.Errorf("no standard input available")
		}
		data, err = io.ReadAll(l.Stdin)
	} else {
		data, err = afero.ReadFile(l.Fs, name)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", name, err)
	}
	return l.check(name, data)
}

// LoadOptional is like Load but treats a missing file as empty text.
func (l *Loader) LoadOptional(name string) (*Text, error) {
	if name != StdinName {
		if ok, err := afero.Exists(l.Fs, name); err == nil && !ok {
			return &Text{Name: name, Lines: 1}, nil
		}
	}
	return l.Load(name)
}

func (l *Loader) check(name string, data []byte) (*Text, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrBinary)
	}
	content := string(data)
	lines := CountLines(content)
	if l.MaxLines > 0 && lines > l.MaxLines {
		return nil, fmt.Errorf("%s has %d lines, limit is %d: %w", name, lines, l.MaxLines, ErrTooLarge)
	}
	return &Text{Name: name, Content: content, Lines: lines}, nil
}

// CountLines returns the number of lines linediff.SplitLines produces for
// text without allocating the split.
func CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}
