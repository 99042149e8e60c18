// Package errors defines the service error taxonomy shared by the procedure
// layer and the HTTP surface. Every failure a caller can observe maps to one
// of the codes below; anything else is an internal error.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error class.
type Code string

const (
	// CodeValidation marks input that violates a declared shape, bound or
	// enumerated value set. Never retried.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeUnauthorized marks a missing or unusable caller identity.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeNotFound marks a lookup whose target does not exist. Update and
	// delete deliberately do NOT raise this; they no-op instead.
	CodeNotFound Code = "NOT_FOUND"
	// CodeStoreUnavailable marks a write that could not reach the store.
	// Reads degrade to empty results instead of raising it.
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	// CodeUpstream marks a failure in an external collaborator
	// (text generation, transcription, blob storage).
	CodeUpstream Code = "UPSTREAM_ERROR"
	// CodeInternal is the catch-all for unexpected failures.
	CodeInternal Code = "INTERNAL_ERROR"
)

// ServiceError is the error type crossing the procedure boundary.
type ServiceError struct {
	Code       Code
	Message    string
	HTTPStatus int
	Details    map[string]interface{}
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// WithDetails attaches a key/value pair for diagnostics.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Validation reports invalid input, naming the offending field.
func Validation(field, message string) *ServiceError {
	return &ServiceError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]interface{}{"field": field},
	}
}

// Validationf is Validation with a formatted message.
func Validationf(field, format string, args ...interface{}) *ServiceError {
	return Validation(field, fmt.Sprintf(format, args...))
}

// Unauthorized reports a missing or invalid caller identity.
func Unauthorized(message string) *ServiceError {
	if message == "" {
		message = "authentication required"
	}
	return &ServiceError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// NotFound reports an absent record on read paths.
func NotFound(kind string, id int64) *ServiceError {
	return &ServiceError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s %d not found", kind, id),
		HTTPStatus: http.StatusNotFound,
	}
}

// StoreUnavailable reports a write that could not reach the relational store.
func StoreUnavailable(err error) *ServiceError {
	return &ServiceError{
		Code:       CodeStoreUnavailable,
		Message:    "database not available",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// Upstream reports a failing external collaborator.
func Upstream(service string, err error) *ServiceError {
	return &ServiceError{
		Code:       CodeUpstream,
		Message:    fmt.Sprintf("%s request failed", service),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *ServiceError {
	return &ServiceError{Code: CodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// GetServiceError extracts a *ServiceError from an error chain, or nil.
func GetServiceError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	svcErr := GetServiceError(err)
	return svcErr != nil && svcErr.Code == code
}
