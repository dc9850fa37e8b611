package tck

import (
	"errors"
	"fmt"
)

var (
	// ErrClassNotFound is wrapped by a ResolveError when no type is known under a name.
	ErrClassNotFound = errors.New("class not found")
	// ErrNotInstantiable is wrapped by a ResolveError when the name resolves to
	// a type that can never have an instance (interfaces, nil).
	ErrNotInstantiable = errors.New("type is not instantiable")
	// ErrDuplicateLabel is returned by strict registries on a repeated label.
	ErrDuplicateLabel = errors.New("instantiator label already registered")
	// ErrInvalidRegistration is returned for an empty label or nil instantiator.
	ErrInvalidRegistration = errors.New("invalid instantiator registration")
)

// ResolveError reports a candidate name the loader could not turn into a type.
type ResolveError struct {
	Name ClassIdentifier
	Err  error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("tck: resolve %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// PanicError carries a value recovered from a panicking instantiator.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("tck: instantiator panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
