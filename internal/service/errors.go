package service

import (
	"errors"
	"fmt"

	"github.com/recetario/recetario/internal/store"
)

// Error kinds. Every error returned by a service matches exactly one of them
// with errors.Is.
var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidReference = errors.New("invalid reference")
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
	ErrStoreFailure     = errors.New("store failure")
)

// Error is a typed service failure carrying a client-facing message.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func missing(msg string) error {
	return &Error{Kind: ErrMissingParameter, Message: msg}
}

func invalid(msg string) error {
	return &Error{Kind: ErrInvalidReference, Message: msg}
}

func conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// storeFailure wraps an error returned by the data store.
func storeFailure(op string, err error) error {
	return &Error{Kind: ErrStoreFailure, Message: op, Err: err}
}

// isNoDocuments reports whether err is the store's empty-result error.
func isNoDocuments(err error) bool {
	return errors.Is(err, store.ErrNoDocuments)
}
