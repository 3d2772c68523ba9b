package cli

import (
	"errors"
	"fmt"

	"story-editor/internal/models"
)

const (
	ExitCodeSuccess  = 0
	ExitCodeGeneric  = 1
	ExitCodeUsage    = 2
	ExitCodeNotFound = 3
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *ExitError) ExitCode() int {
	if e == nil {
		return ExitCodeGeneric
	}
	return e.Code
}

func asExitError(code int, err error) error {
	if err == nil {
		return nil
	}
	var withExit interface{ ExitCode() int }
	if errors.As(err, &withExit) {
		return err
	}
	return &ExitError{Code: code, Err: err}
}

// mapCommandError translates store errors into exit codes.
func mapCommandError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, models.ErrNotFound):
		return asExitError(ExitCodeNotFound, err)
	case errors.Is(err, models.ErrInvalidArgument):
		return asExitError(ExitCodeUsage, err)
	default:
		return asExitError(ExitCodeGeneric, err)
	}
}

func usageErrorf(format string, args ...any) error {
	return &ExitError{
		Code: ExitCodeUsage,
		Err:  fmt.Errorf(format, args...),
	}
}

// ExitCodeOf returns the exit code carried by err, ExitCodeGeneric otherwise.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	var withExit interface{ ExitCode() int }
	if errors.As(err, &withExit) {
		return withExit.ExitCode()
	}
	return ExitCodeGeneric
}
