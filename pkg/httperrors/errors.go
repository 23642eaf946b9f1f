// Package httperrors provides the structured error taxonomy shared by the
// parser, writer, and worker state machine.
package httperrors

import "fmt"

// Kind represents the category of error that crossed a module boundary.
type Kind string

const (
	// ConnectionError means a socket read/write failed or closed prematurely.
	ConnectionError Kind = "connection_error"
	// LineTooLong means a single line exceeded its configured cap.
	LineTooLong Kind = "line_too_long"
	// TooLong means an aggregate size (headers, body) exceeded its cap.
	TooLong Kind = "too_long"
	// MalformedLine means the grammar did not match a request/response/chunk line.
	MalformedLine Kind = "malformed_line"
	// MalformedHeader means the grammar did not match a header line.
	MalformedHeader Kind = "malformed_header"
	// BadMethod means the method is not GET/HEAD/POST.
	BadMethod Kind = "bad_method"
	// BadVersion means the HTTP version is not 1.0/1.1.
	BadVersion Kind = "bad_version"
	// BadContentLength means Content-Length failed to parse as an unsigned integer.
	BadContentLength Kind = "bad_content_length"
	// TooManyHeaders means the header count exceeded the configured cap.
	TooManyHeaders Kind = "too_many_headers"
	// NoContentLength is reserved; absence of Content-Length is valid and never produces this.
	NoContentLength Kind = "no_content_length"
)

// Error is a structured error carrying the Kind, the operation that failed,
// and the underlying cause, so that callers higher up the stack (the worker)
// can pick a client-visible status from the Kind alone.
type Error struct {
	Kind  Kind
	Op    string
	Cause error
}

// New constructs an Error of the given kind.
func New(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Cause: cause}
}

// Error implements the error interface: "[kind] op: cause".
func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Cause)
}

// Unwrap returns the underlying cause, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf extracts the Kind from err, if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind, true
	}
	return "", false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
