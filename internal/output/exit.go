package output

import (
	"errors"
	"io/fs"
)

// ExitError carries an explicit process exit code. An ExitError with a nil
// Err exits silently.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ErrChanges is returned by "diff --exit-code" when the inputs differ.
var ErrChanges = &ExitError{Code: ExitUserError}

// Code maps an error returned by a command to its exit code. Missing files
// and bad arguments are user errors; other filesystem failures are system
// errors.
func Code(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, fs.ErrNotExist) {
		return ExitUserError
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitSystemError
	}
	return ExitUserError
}
