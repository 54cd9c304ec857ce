package inventory

import (
	"errors"
	"fmt"
)

// Kind classifies failures reported to the user.
type Kind int

// Error kinds.
const (
	KindFetch Kind = iota + 1
	KindWrite
	KindDuplicate
	KindExport
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindWrite:
		return "write"
	case KindDuplicate:
		return "duplicate"
	case KindExport:
		return "export"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Validation errors returned before any gateway call.
var (
	ErrEmptyValue  = errors.New("please enter a value")
	ErrNotAnOption = errors.New("value is not a configured option")
	ErrNotFound    = errors.New("not found")
	ErrClosed      = errors.New("editor is closed")
)

// Error is a failed operation together with the notice shown to the user.
type Error struct {
	Kind   Kind
	Op     string
	Notice string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// Notice returns the short message a surface should show for err.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Notice != "" {
		return e.Notice
	}
	switch {
	case errors.Is(err, ErrEmptyValue):
		return "Please enter a value"
	case errors.Is(err, ErrNotAnOption):
		return "Please pick one of the configured values"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	}
	return "Something went wrong"
}

func fetchError(op, notice string, err error) error {
	return &Error{Kind: KindFetch, Op: op, Notice: notice, Err: err}
}

func writeError(op, notice string, err error) error {
	return &Error{Kind: KindWrite, Op: op, Notice: notice, Err: err}
}
