// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads what handlers need from an inbound request: the
// JSON body, chi URL parameters and the caller established by the auth gate.
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/platform/validate"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes a single JSON value from the body into target.
//
// Malformed, oversized or empty bodies all yield [validate.ErrInvalidJSON];
// trailing bytes after the value are ignored.
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns nil for anonymous requests.
func Claims(request *http.Request) *sec.Claims {
	return ctxutil.GetClaims(request.Context())
}

// Caller returns the verified identity, or a 401 when the request is anonymous.
func Caller(request *http.Request) (sec.Identity, error) {
	claims := Claims(request)
	if claims == nil {
		return sec.Identity{}, apperr.Unauthorized("Authentication required")
	}
	return claims.Identity(), nil
}
