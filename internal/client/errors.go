// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

// ErrSessionExpired is returned when the server rejects the refresh cookie.
// The session has been cleared by the time the caller sees it.
var ErrSessionExpired = errors.New("client: session expired")

// Server error codes the client acts on.
const (
	CodeTokenInvalid = apperr.CodeTokenInvalid
	CodeForbidden    = apperr.CodeForbidden
)

// APIError is a non-2xx response decoded from the server error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []apperr.FieldError
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("client: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("client: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsStatus reports whether err is an [*APIError] with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == statusCode
}

// decodeAPIError builds an [*APIError] from a response, tolerating non-JSON bodies.
func decodeAPIError(response *Response) *APIError {
	apiError := &APIError{StatusCode: response.StatusCode}

	var envelope apperr.AppError
	if err := json.Unmarshal(response.Body, &envelope); err == nil {
		apiError.Code = envelope.Code
		apiError.Message = envelope.Message
		apiError.Details = envelope.Details
	}
	return apiError
}
