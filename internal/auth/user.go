// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user identity and the session lifecycle.

It owns the user record, the credential stores, token issuance, the cookie
profiles and the HTTP endpoints under /api/auth.

# Session model

A login yields two signed tokens. The access token is short-lived and is
presented on every protected request (bearer header or cookie). The refresh
token is long-lived, travels only as an HTTP-only cookie, and is exchanged at
/auth/refresh for a new access token. The refresh token is not rotated.
*/
package auth

import (
	"time"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Identity projects the user onto the claim carried by both tokens.
func (user *User) Identity() sec.Identity {
	return sec.Identity{ID: user.ID, Email: user.Email, Role: user.Role}
}

// Session is the result of a successful login, registration or refresh.
// RefreshToken is empty after a refresh because the refresh token is not rotated.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         sec.Identity
}

// # Field Identifiers

// Field names used in validation errors.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
)

// # Authentication Constraints

const (
	// AccessTokenTTL is the lifetime of an access token and its cookie.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the lifetime of a refresh token and its cookie.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// MinPasswordLength applies to both login and registration.
	MinPasswordLength = 8

	// MaxEmailLength is the RFC 5321 path limit.
	MaxEmailLength = 254
)
