// Package errors defines the error values surfaced to API clients.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// APIError is an error that carries the HTTP status and the client-facing message.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
	err        error
}

func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

// New creates an APIError with the given status and message.
func New(statusCode int, message string, errs ...string) *APIError {
	if errs == nil {
		errs = []string{}
	}
	return &APIError{StatusCode: statusCode, Message: message, Errors: errs}
}

// Wrap creates an APIError that keeps err as its cause.
func Wrap(statusCode int, message string, err error) *APIError {
	apiErr := New(statusCode, message)
	apiErr.err = err
	return apiErr
}

// As extracts an APIError from the chain, converting anything else into an
// internal server error.
func As(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	return NewErrInternalServerError(err)
}

func NewErrBadRequest(message string, errs ...string) *APIError {
	return New(http.StatusBadRequest, message, errs...)
}

func NewErrUnauthorized(message string) *APIError {
	return New(http.StatusUnauthorized, message)
}

func NewErrForbidden(message string) *APIError {
	return New(http.StatusForbidden, message)
}

func NewErrNotFound(message string) *APIError {
	return New(http.StatusNotFound, message)
}

func NewErrConflict(message string) *APIError {
	return New(http.StatusConflict, message)
}

func NewErrInternalServerError(err error) *APIError {
	return Wrap(http.StatusInternalServerError, "internal server error", err)
}

func NewErrMissingAuthorizationToken() *APIError {
	return NewErrUnauthorized("unauthorized request")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return NewErrUnauthorized("invalid access token")
}

func NewErrEmailIsTaken(email string) *APIError {
	return NewErrConflict(fmt.Sprintf("user with email %s already exists", email))
}

func NewErrUserNotFound() *APIError {
	return NewErrNotFound("user does not exist")
}

func NewErrTodoNotFound() *APIError {
	return NewErrNotFound("todo not found")
}
