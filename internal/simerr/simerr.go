// Package simerr defines the simulator's error taxonomy. The original C
// source propagates negative integer status codes through every buffer
// view and handler return; this is the same seven-wide taxonomy expressed
// as sentinel errors, wrapped with github.com/pkg/errors so terminal
// failures keep a stack trace for logging without inventing a parallel
// code scheme.
package simerr

import "github.com/pkg/errors"

// Code identifies which taxonomy bucket an error belongs to.
type Code int

const (
	// BadData marks a malformed byte stream, e.g. a length field mismatch
	// at the frame reader.
	BadData Code = iota + 1
	// TooSmall marks a declared length larger than the bytes available.
	TooSmall
	// TooLarge marks a declared length that exceeds a hard limit.
	TooLarge
	// BadParam marks a magic/handshake field with the wrong value, or a
	// session/connection id wrong for the current state.
	BadParam
	// Unsupported marks a command or service code the simulator does not
	// implement.
	Unsupported
	// OutOfBounds marks a buffer access beyond its length.
	OutOfBounds
	// ReadFailed marks a transport-level read failure.
	ReadFailed
	// WriteFailed marks a transport-level write failure.
	WriteFailed
	// CreateFailed marks a socket creation failure at startup.
	CreateFailed
	// OpenFailed marks a socket bind/listen failure at startup.
	OpenFailed
)

func (c Code) String() string {
	switch c {
	case BadData:
		return "BAD_DATA"
	case TooSmall:
		return "TOO_SMALL"
	case TooLarge:
		return "TOO_LARGE"
	case BadParam:
		return "BAD_PARAM"
	case Unsupported:
		return "UNSUPPORTED"
	case OutOfBounds:
		return "OUT_OF_BOUNDS"
	case ReadFailed:
		return "READ"
	case WriteFailed:
		return "WRITE"
	case CreateFailed:
		return "CREATE"
	case OpenFailed:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// Error is a taxonomy-coded error, terminal to the connection that raised it.
type Error struct {
	code Code
	msg  string
}

func (e *Error) Error() string {
	return e.code.String() + ": " + e.msg
}

// CodeOf reports the taxonomy bucket for err, or 0 if err does not carry one.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}

// New builds a taxonomy error with a stack trace attached.
func New(code Code, msg string) error {
	return errors.WithStack(&Error{code: code, msg: msg})
}

// Newf builds a taxonomy error with a formatted message and a stack trace.
func Newf(code Code, format string, args ...any) error {
	return errors.WithStack(&Error{code: code, msg: errors.Errorf(format, args...).Error()})
}

// Wrap attaches a taxonomy code to an existing error. The original error's
// text is kept in the message; the original error value is not retained,
// so errors.Is/As do not reach it through the result.
func Wrap(code Code, err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(&Error{code: code, msg: msg + ": " + err.Error()})
}
