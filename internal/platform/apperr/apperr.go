// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by the Taskboard server and its
client.

Every failure that crosses the HTTP boundary is an [AppError]. The code is the
contract: clients branch on it, never on the message. Two codes matter to the
session layer in particular:

  - UNAUTHORIZED (401): no credential was presented. Clients do not refresh.
  - TOKEN_INVALID (403): a credential was presented but could not be verified.
    Clients refresh once and replay the request.

A role denial is also a 403 but carries FORBIDDEN, so it never triggers a
refresh.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes understood by clients.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeMethod       = "METHOD_NOT_ALLOWED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeForbidden    = "FORBIDDEN"
	CodeBadRequest   = "BAD_REQUEST"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

const internalErrMessage = "An unexpected error occurred"

// AppError is a client-safe error with its HTTP mapping.
//
// Cause is logged by the responder and never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	Details    []FieldError `json:"details,omitempty"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`

	// RetryAfter is surfaced as a Retry-After header when positive.
	RetryAfter int `json:"-"`
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// NotFound reports a missing resource, e.g. NotFound("Task") -> "Task not found".
//
// Tasks owned by another user are reported the same way.
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// MethodNotAllowed reports a known route hit with an unsupported verb.
func MethodNotAllowed(method string) *AppError {
	return newError(http.StatusMethodNotAllowed, CodeMethod, "Method "+method+" not allowed")
}

// Unauthorized reports that no usable credential accompanied the request.
func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, msg)
}

// StaleCredential reports a credential that was offered but is expired,
// tampered or otherwise unverifiable.
func StaleCredential(msg string) *AppError {
	return newError(http.StatusForbidden, CodeTokenInvalid, msg)
}

// Forbidden reports an authenticated caller lacking the required role.
func Forbidden(msg string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, msg)
}

// BadRequest reports a request the server cannot parse.
func BadRequest(msg string) *AppError {
	return newError(http.StatusBadRequest, CodeBadRequest, msg)
}

// ValidationError reports rejected input, optionally per field.
func ValidationError(msg string, details ...FieldError) *AppError {
	appErr := newError(http.StatusBadRequest, CodeValidation, msg)
	appErr.Details = details
	return appErr
}

// Conflict reports a write rejected by a uniqueness rule.
func Conflict(msg string) *AppError {
	return newError(http.StatusConflict, CodeConflict, msg)
}

// RateLimited reports an exhausted request budget.
func RateLimited(retryAfterSeconds int) *AppError {
	appErr := newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
	appErr.RetryAfter = retryAfterSeconds
	return appErr
}

// Internal hides cause behind a generic 500.
func Internal(cause error) *AppError {
	appErr := newError(http.StatusInternalServerError, CodeInternal, internalErrMessage)
	appErr.Cause = cause
	return appErr
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
