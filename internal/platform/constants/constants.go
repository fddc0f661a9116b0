// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed names and limits shared by the server,
// the client and the CLI. Anything an operator should tune lives in config.
package constants

import "time"

const (
	AppName    = "taskboard"
	AppVersion = "0.1.0-dev"
)

// HTTP server timing.
const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 35 * time.Second // outlives GlobalRequestTimeout
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout cancels the request context of slow handlers.
	GlobalRequestTimeout = 30 * time.Second
	ShutdownTimeout      = 30 * time.Second
)

// Per-IP token buckets.
const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// One login or register attempt every two seconds, after a burst of ten.
	CredentialRateLimitRPS   = 0.5
	CredentialRateLimitBurst = 10

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// Credential transport.
const (
	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"
	AuthCookiePath         = "/"
	BearerScheme           = "Bearer"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderOrigin        = "Origin"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXRequestID    = "X-Request-ID"
)

// RedisPrefixCredential namespaces cached credential records by email.
const RedisPrefixCredential = "taskboard:credential:"
