package materialize

import (
	"errors"
	"fmt"
)

// Kind identifies a fatal precondition failure
type Kind int

const (
	KindMissingProjectName Kind = iota + 1
	KindTemplateNotFound
	KindInvalidPackageIdentifier
)

// Sentinel errors matched by *Error through errors.Is
var (
	ErrMissingProjectName       = errors.New("project name is required")
	ErrTemplateNotFound         = errors.New("template directory not found")
	ErrInvalidPackageIdentifier = errors.New("invalid package identifier")
)

func (k Kind) String() string {
	switch k {
	case KindMissingProjectName:
		return "MissingProjectName"
	case KindTemplateNotFound:
		return "TemplateNotFound"
	case KindInvalidPackageIdentifier:
		return "InvalidPackageIdentifier"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindMissingProjectName:
		return ErrMissingProjectName
	case KindTemplateNotFound:
		return ErrTemplateNotFound
	case KindInvalidPackageIdentifier:
		return ErrInvalidPackageIdentifier
	default:
		return nil
	}
}

// Error is a fatal precondition failure. It is always returned before the
// target tree has been touched.
type Error struct {
	Kind Kind
	// Subject is the offending value (template path, package identifier)
	Subject string
	// Suggestion is an optional corrected value the caller may offer
	Suggestion string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Subject != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Subject)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e.Kind
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// IsFatal reports whether err carries a fatal precondition failure
func IsFatal(err error) bool {
	var merr *Error
	return errors.As(err, &merr)
}
