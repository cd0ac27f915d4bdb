package plugin

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownView is returned for calls naming a view that is not open.
	ErrUnknownView = errors.New("view is not open")

	// ErrViewAlreadyOpen is returned when a view is opened twice.
	ErrViewAlreadyOpen = errors.New("view already open")

	// ErrViewReleased is returned when a View is used after its callback returned.
	ErrViewReleased = errors.New("view used outside of its callback")
)

// HostError reports a failed query or mutation against the host.
type HostError struct {
	Method string
	Err    error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("host query %s failed: %v", e.Method, e.Err)
}

func (e *HostError) Unwrap() error { return e.Err }

// RequestError reports a call the host should not have made, such as one
// naming an unknown view or carrying malformed parameters.
type RequestError struct {
	Method string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("bad %s request: %v", e.Method, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// FaultError reports a failure inside the plugin while it served a call.
type FaultError struct {
	Method string
	Err    error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("plugin fault in %s: %v", e.Method, e.Err)
}

func (e *FaultError) Unwrap() error { return e.Err }
