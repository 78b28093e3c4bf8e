// Package tensorerr defines the error taxonomy shared by every layer of
// the array engine: Bounds, Unsupported, Arithmetic, Platform, and IO.
package tensorerr

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

// Kind classifies why a call failed.
type Kind string

const (
	Bounds      Kind = "Bounds"
	Unsupported Kind = "Unsupported"
	Arithmetic  Kind = "Arithmetic"
	Platform    Kind = "Platform"
	IO          Kind = "IO"
)

// Error carries enough context to diagnose a failure without reading
// source: the offending operation, an optional shape/index, and a wrapped
// cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Shape   []int
	Index   int
	HasIdx  bool
	cause   error
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Kind, e.Message)
	if e.Op != "" {
		fmt.Fprintf(&sb, " (op=%s)", e.Op)
	}
	if e.Shape != nil {
		fmt.Fprintf(&sb, " shape=%s", pretty.Sprint(e.Shape))
	}
	if e.HasIdx {
		fmt.Fprintf(&sb, " index=%d", e.Index)
	}
	if e.cause != nil {
		fmt.Fprintf(&sb, ": %s", e.cause)
	}
	return sb.String()
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// New builds a context-free error of the given kind.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf is New with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return New(kind, op, fmt.Sprintf(format, args...))
}

// WithShape attaches the offending shape to the error for diagnosis.
func (e *Error) WithShape(shape []int) *Error {
	e.Shape = append([]int(nil), shape...)
	return e
}

// WithIndex attaches an offending linear index or axis.
func (e *Error) WithIndex(i int) *Error {
	e.Index = i
	e.HasIdx = true
	return e
}

// Wrap attaches a lower-layer cause (device/transfer failure) using
// github.com/pkg/errors so the original stack trace survives.
func Wrap(kind Kind, op string, cause error, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, cause: errors.Wrap(cause, message)}
}

// Bytes formats a byte count for IO/Platform diagnostics, e.g. a failed
// device upload of a multi-megabyte buffer.
func Bytes(n int) string {
	return humanize.Bytes(uint64(n))
}

// Is reports whether err is a tensorerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}
