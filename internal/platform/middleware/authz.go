// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// Gate decisions reported to the [GateRecorder].
const (
	decisionAnonymous = "anonymous"
	decisionStale     = "stale"
	decisionAccepted  = "accepted"
)

// TokenVerifier verifies an access token.
//
// Defining it here decouples the gate from the auth package and lets tests
// inject a stub verifier.
type TokenVerifier interface {
	VerifyAccess(token string) (*sec.Claims, error)
}

// GateRecorder counts gate decisions. [*metrics.Metrics] satisfies it.
type GateRecorder interface {
	RecordGateDecision(decision string)
}

// Authenticate extracts and verifies the access token of the request.
//
// # Flow
//  1. Read 'Authorization: Bearer <token>', falling back to the accessToken cookie.
//  2. If neither is present, the request proceeds as anonymous.
//  3. If present but malformed, expired or forged, abort with 403 TOKEN_INVALID.
//     Clients treat that code as the signal to refresh and retry.
//  4. Otherwise inject [*sec.Claims] into the request context.
//
// Mount it on protected groups only: a stale token must never block the
// login, register or refresh routes.
func Authenticate(verifier TokenVerifier, recorder GateRecorder) func(http.Handler) http.Handler {
	record := func(decision string) {
		if recorder != nil {
			recorder.RecordGateDecision(decision)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Credential Lookup ──────────────────────────────────────────
			token, present, wellFormed := extractToken(request)
			if !present {
				record(decisionAnonymous)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Verification ───────────────────────────────────────────────
			var claims *sec.Claims
			err := apperr.StaleCredential("Invalid or expired token")
			if wellFormed {
				var verifyErr error
				claims, verifyErr = verifier.VerifyAccess(token)
				if verifyErr == nil {
					err = nil
				} else {
					ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "access_token_rejected",
						slog.String("reason", verifyErr.Error()),
					)
				}
			}

			if err != nil {
				record(decisionStale)
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			record(decisionAccepted)
			noteCaller(request.Context(), claims.UserID)
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// extractToken returns the offered token, whether any credential was offered,
// and whether it had the expected shape.
func extractToken(request *http.Request) (token string, present, wellFormed bool) {
	if header := request.Header.Get(constants.HeaderAuthorization); header != "" {
		scheme, value, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
			return "", true, false
		}
		value = strings.TrimSpace(value)
		return value, true, value != ""
	}

	if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true, true
	}

	return "", false, false
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if GetUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated user doesn't have the required role.
// It implies [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := GetUser(request.Context())

			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !claims.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser retrieves the [*sec.Claims] from the [context.Context], or nil when anonymous.
func GetUser(ctx context.Context) *sec.Claims {
	return ctxutil.GetClaims(ctx)
}
