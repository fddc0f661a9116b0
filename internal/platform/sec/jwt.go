// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. The [TokenCodec] knows nothing about access versus refresh
// tokens: callers pick the secret, so a token signed with one secret can never
// verify under the other.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when the current time is at or past the embedded expiration.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid is returned when the signature, structure, algorithm or issuer is wrong.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// Identity is the claim embedded in every token.
//
// It is regenerated from the persisted user record whenever a token pair is
// minted, so role changes only reach clients on the next login.
type Identity struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (identity Identity) IsAdmin() bool {
	return identity.Role == RoleAdmin
}

// Claims represents the full JWT payload: the identity plus registered claims.
//
// By embedding the identity directly inside the JWT, the auth gate can
// reconstruct the caller WITHOUT querying the database on every request.
type Claims struct {
	jwt.RegisteredClaims

	UserID string   `json:"id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

// Identity returns the identity claim carried by the token.
func (claims *Claims) Identity() Identity {
	return Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
}

// CodecOption configures a [TokenCodec].
type CodecOption func(*TokenCodec)

// WithClock overrides the time source used for both signing and verification.
func WithClock(now func() time.Time) CodecOption {
	return func(codec *TokenCodec) { codec.now = now }
}

// TokenCodec signs and verifies compact HS256 tokens.
type TokenCodec struct {
	issuer string
	now    func() time.Time
}

// NewTokenCodec creates a codec that stamps and expects the given issuer.
func NewTokenCodec(issuer string, opts ...CodecOption) *TokenCodec {
	codec := &TokenCodec{issuer: issuer, now: time.Now}
	for _, opt := range opts {
		opt(codec)
	}
	return codec
}

// Sign encodes the identity with issued-at and an expiration ttl from now.
func (codec *TokenCodec) Sign(identity Identity, secret []byte, timeToLive time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("sec: empty signing secret")
	}

	currentTime := codec.now()
	claims := Claims{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a token string.
//
// It returns exactly one of: the claims, [ErrTokenExpired] or [ErrTokenInvalid].
// A token that is both tampered and expired reports [ErrTokenInvalid]; expiry
// is only meaningful for a token whose integrity holds.
func (codec *TokenCodec) Verify(tokenString string, secret []byte) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(codec.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(codec.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
