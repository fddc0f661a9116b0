// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores per-request values on a [context.Context]: the
// correlation ID, the request-scoped logger and the verified access claims.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

type (
	requestIDKey struct{}
	loggerKey    struct{}
	claimsKey    struct{}
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger falls back to [slog.Default] so callers never nil-check.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithClaims records the claims of a verified access token.
func WithClaims(ctx context.Context, claims *sec.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims returns nil for anonymous requests.
func GetClaims(ctx context.Context) *sec.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*sec.Claims)
	return claims
}
