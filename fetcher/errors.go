package fetcher

import (
	"errors"
	"fmt"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrConnection = errors.New("connection error")
	ErrProtocol   = errors.New("protocol error")
	ErrNotFound   = errors.New("resource not found")
	ErrIO         = errors.New("i/o error")
)

// Error describes a failed fetch step.
type Error struct {
	Op      string // dial, handshake, write, read, decode, open
	Locator string
	Kind    error
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Locator, e.Kind)
	}
	if errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Locator, e.Err)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Locator, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func protocolError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrProtocol, fmt.Sprintf(format, args...))
}
