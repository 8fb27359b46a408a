// Package output provides formatting utilities for CLI output.
package output

import (
	"bytes"
	"io"
	"os"
)

// Writer buffers command output so it can be sent through a pager once
// complete.
type Writer struct {
	dest  io.Writer
	page  bool
	buf   bytes.Buffer
	pager func(string) error
}

// NewWriter creates a writer that flushes to dest. When page is true and
// dest is a terminal, output taller than the terminal goes through the pager.
func NewWriter(dest io.Writer, page bool) *Writer {
	return &Writer{
		dest:  dest,
		page:  page,
		pager: Page,
	}
}

// Write buffers p until Flush.
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Flush writes everything buffered so far.
func (w *Writer) Flush() error {
	defer w.buf.Reset()
	content := w.buf.String()
	if w.page {
		if f, ok := w.dest.(*os.File); ok && isTerminal(f) && ShouldPage(content, TerminalHeight(f)) {
			return w.pager(content)
		}
	}
	_, err := io.WriteString(w.dest, content)
	return err
}
