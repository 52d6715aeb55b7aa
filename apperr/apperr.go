// Package apperr carries the error kinds the HTTP layer knows how to render.
// Services return these; controllers map them to a status code and the
// {success:false, message} body. Anything else is treated as internal.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a failed input rule (400).
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Unauthenticated reports a missing/invalid/expired credential (401).
func Unauthenticated(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// NotFound reports that no matching account exists (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict reports a duplicate username or email (409).
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Config reports missing required configuration, e.g. a signing secret (500).
func Config(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// Internal wraps an unexpected storage or hashing failure (500). The wrapped
// error is kept for logs; the client only ever sees the generic message.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Something went wrong, please try again later", Err: err}
}

// From extracts the *Error from err, falling back to Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
