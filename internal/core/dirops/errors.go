package dirops

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package and by conforming
// providers matches exactly one of them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrPathBlocked     = errors.New("path is blocked by an entry that is not a directory")
	ErrAlreadyExists   = errors.New("entry already exists")
	ErrNotEmpty        = errors.New("directory is not empty")
	ErrIO              = errors.New("i/o failure")
	ErrCrossDevice     = errors.New("source and target are on different devices")
)

var errMustBeAbsolute = errors.New("must be an absolute path")

// PathError records a failed operation and the path that caused it.
type PathError struct {
	Op    string
	Path  string
	Kind  error
	Cause error
}

func (e *PathError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to %s '%s': %v: %v", e.Op, e.Path, e.Kind, e.Cause)
	}
	return fmt.Sprintf("failed to %s '%s': %v", e.Op, e.Path, e.Kind)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *PathError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// NewPathError builds a PathError for p. Providers use it to report failures.
func NewPathError(op string, p Path, kind, cause error) *PathError {
	return &PathError{Op: op, Path: p.String(), Kind: kind, Cause: cause}
}

func blocked(op string, p Path, kind EntryKind) error {
	return &PathError{Op: op, Path: p.String(), Kind: ErrPathBlocked, Cause: fmt.Errorf("'%s' exists and is not a directory (%s)", p, kind)}
}
