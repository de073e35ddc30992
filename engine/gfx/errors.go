package gfx

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the recoverable failures a device reports.
type ErrorKind uint8

const (
	// A declared backend without an implementation was used.
	ErrUnimplementedBackend ErrorKind = iota + 1
	// Presenting the back buffer failed.
	ErrPresentationFailure
	// The requested backend cannot run on this platform or build.
	ErrBackendNotAvailable
	// The display configuration is invalid.
	ErrInvalidConfig
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnimplementedBackend:
		return "unimplemented backend"
	case ErrPresentationFailure:
		return "presentation failure"
	case ErrBackendNotAvailable:
		return "backend not available"
	case ErrInvalidConfig:
		return "invalid config"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against an *Error kind.
var (
	ErrUnimplemented = &Error{Kind: ErrUnimplementedBackend}
	ErrPresentation  = &Error{Kind: ErrPresentationFailure}
	ErrNotAvailable  = &Error{Kind: ErrBackendNotAvailable}
	ErrConfig        = &Error{Kind: ErrInvalidConfig}
)

// Error is a recoverable device level failure. The frame loop owner
// decides whether to retry, fall back or terminate.
type Error struct {
	Kind    ErrorKind
	Backend Kind
	Op      string
	Err     error
}

func newError(kind ErrorKind, backend Kind, op string, err error) *Error {
	return &Error{Kind: kind, Backend: backend, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = fmt.Sprintf("gfx: %s (%s backend): %s", e.Op, e.Backend, msg)
	} else {
		msg = "gfx: " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the ErrorKind of err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
