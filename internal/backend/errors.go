package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error is a structured backend failure. Transient errors (timeouts, queue
// congestion, service unavailability) may be retried with backoff; fatal
// errors (rejected circuits, bad requests) are reported immediately.
type Error struct {
	Code      string
	Message   string
	Transient bool
}

func (e *Error) Error() string {
	kind := "fatal"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("backend: %s (%s, %s)", e.Message, e.Code, kind)
}

// IsTransient reports whether the error is worth retrying: an explicit
// transient backend error, a context deadline, or a network timeout.
func IsTransient(err error) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Transient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

// transientError and fatalError build classified errors.
func transientError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Transient: true}
}

func fatalError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Transient: false}
}
