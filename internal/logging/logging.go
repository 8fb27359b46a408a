// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Setup points logrus at w (stderr when nil) and sets its level. verbose
// forces debug level regardless of level.
func Setup(w io.Writer, level string, verbose bool) error {
	if w == nil {
		w = os.Stderr
	}
	lvl := logrus.DebugLevel
	if !verbose {
		var err error
		if lvl, err = logrus.ParseLevel(level); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}

	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: isTerminal(w),
		FullTimestamp:    true,
		DisableColors:    !isTerminal(w),
	})
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
