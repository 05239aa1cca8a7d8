package container

import (
	"errors"
	"reflect"
	"strconv"
)

// ── Sentinels ─────────────────────────────────────────────────────────────────

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("container: not found")

	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("container: configuration error")

	// ErrResolution matches every *ResolutionError.
	ErrResolution = errors.New("container: resolution error")
)

// ── NotFoundError ─────────────────────────────────────────────────────────────

// NotFoundError is returned by strict lookups that did not find exactly one
// instance, and by method lookups that found no method of the given name.
//
// A capability with zero registrations and one with several registrations are
// the same kind of failure; Candidates only makes the message clearer.
type NotFoundError struct {
	// Capability is the requested capability (nil for method lookups).
	Capability reflect.Type

	// Method is set when a named method was not found on Receiver.
	Method   string
	Receiver reflect.Type

	// Candidates is the number of instances registered under Capability.
	Candidates int
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Method != "" {
		// Example: container: method "Boot" not found on *app.Service
		return "container: method " + strconv.Quote(e.Method) + " not found on " + typeName(e.Receiver)
	}
	// Example: container: no single instance of app.Logger (2 registered)
	return "container: no single instance of " + typeName(e.Capability) +
		" (" + strconv.Itoa(e.Candidates) + " registered)"
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ── ConfigurationError ────────────────────────────────────────────────────────

// ConfigurationError reports a registration or design mistake: an abstract type
// handed to Instantiate, a type without exactly one eligible constructor, or a
// malformed constructor declaration.
type ConfigurationError struct {
	Type   reflect.Type
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	// Example: container: *app.Service: 2 eligible constructors, want exactly one
	return "container: " + typeName(e.Type) + ": " + e.Reason
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ── ResolutionError ───────────────────────────────────────────────────────────

// ResolutionError is returned when a constructor or method parameter could not
// be satisfied from the registry and declares no default value.
type ResolutionError struct {
	Capability reflect.Type
	Parameter  string

	// Context describes the enclosing operation, e.g. "instantiating *app.Service".
	Context string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	// Example: container: cannot resolve app.Logger for parameter "log" while instantiating *app.Service
	msg := "container: cannot resolve " + typeName(e.Capability) + " for parameter " + strconv.Quote(e.Parameter)
	if e.Context != "" {
		msg += " while " + e.Context
	}
	return msg
}

// Is reports whether target is ErrResolution.
func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
