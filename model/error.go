package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Use IsKind (or errors.Is) to test for them through wrapping.
var (
	ErrCatalogFetch    = errors.New("icon catalog could not be loaded")
	ErrCatalogNotReady = errors.New("icon catalog is still loading")
	ErrInvalidConfig   = errors.New("invalid icon configuration")
	ErrStorageCorrupt  = errors.New("stored data is corrupt")
	ErrNotFound        = errors.New("not found")
	ErrDeclined        = errors.New("update declined")
	ErrNoSelection     = errors.New("no icon selected")
)

// IsKind reports whether err is, or wraps, the given kind.
func IsKind(err, kind error) bool {
	return errors.Is(err, kind)
}

// MissingFieldError reports a required configuration field that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

func (e *MissingFieldError) Unwrap() error { return ErrInvalidConfig }

// FieldError reports a present field whose value is unusable.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidConfig }

// ExitCode is the process status the CLI reports.
type ExitCode int

func (e ExitCode) String() string {
	return fmt.Sprintf("Exit code %d", e)
}

func (e ExitCode) Error() string {
	return e.String()
}

const (
	NoError ExitCode = iota
	UnknownError
	// UserCanceled is returned when a confirmation prompt was declined.
	UserCanceled
	InvalidInput
	NotFound
)

// ExitError carries an explicit exit code up to main.
type ExitError struct {
	Code ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError pins err to code.
func NewExitError(code ExitCode, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// ExitCodeFor maps an error onto the process exit code. An ExitError anywhere
// in the chain wins over the domain error kinds.
func ExitCodeFor(err error) ExitCode {
	var exitErr *ExitError
	switch {
	case err == nil:
		return NoError
	case errors.As(err, &exitErr):
		return exitErr.Code
	case IsKind(err, ErrDeclined):
		return UserCanceled
	case IsKind(err, ErrInvalidConfig):
		return InvalidInput
	case IsKind(err, ErrNotFound):
		return NotFound
	}
	return UnknownError
}
