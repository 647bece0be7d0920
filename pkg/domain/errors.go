package domain

import (
	"errors"
	"net/http"
)

// Common domain errors. Business rejections carry one of these as their kind.
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrUnauthorized is returned when the caller identity does not map to a client
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidRequest is returned when a request fails validation
	ErrInvalidRequest = errors.New("invalid request")
	// ErrLimitExceeded is returned when a per-client quota is reached
	ErrLimitExceeded = errors.New("limit exceeded")
	// ErrCapacityExceeded is returned when a system-wide quota is reached
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrConflict is returned when a uniqueness rule would be broken
	ErrConflict = errors.New("conflict")
)

// Error is a business rejection: a kind plus the literal message shown to the caller.
type Error struct {
	Kind    error
	Message string
}

// Reject builds a rejection of the given kind.
func Reject(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Status returns the HTTP-analog status of the rejection.
func (e *Error) Status() int {
	if errors.Is(e.Kind, ErrCapacityExceeded) {
		return http.StatusConflict
	}
	return http.StatusForbidden
}

// StatusCode maps any error returned by a manager to an HTTP-analog status.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var rejection *Error
	if errors.As(err, &rejection) {
		return rejection.Status()
	}
	return http.StatusInternalServerError
}

// Receipt is the success payload of operations that report a message instead of an entity.
type Receipt struct {
	Message string
	Status  int
}
