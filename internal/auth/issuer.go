// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"fmt"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// TokenPair is the pair of tokens minted at login and registration.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Issuer mints and verifies the two token kinds. Access and refresh tokens
// are signed with different secrets, so neither can stand in for the other.
type Issuer struct {
	codec         *sec.TokenCodec
	accessSecret  []byte
	refreshSecret []byte
}

// NewIssuer creates an [Issuer] over codec with the two secrets.
func NewIssuer(codec *sec.TokenCodec, accessSecret, refreshSecret string) *Issuer {
	return &Issuer{
		codec:         codec,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// Issue signs both tokens for the same identity claim.
func (issuer *Issuer) Issue(identity sec.Identity) (TokenPair, error) {
	accessToken, err := issuer.IssueAccess(identity)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := issuer.codec.Sign(identity, issuer.refreshSecret, RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth_issuer_refresh_sign_failed: %w", err)
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// IssueAccess signs a new access token only.
func (issuer *Issuer) IssueAccess(identity sec.Identity) (string, error) {
	token, err := issuer.codec.Sign(identity, issuer.accessSecret, AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_issuer_access_sign_failed: %w", err)
	}
	return token, nil
}

// VerifyAccess verifies an access token. It satisfies [middleware.TokenVerifier].
func (issuer *Issuer) VerifyAccess(token string) (*sec.Claims, error) {
	return issuer.codec.Verify(token, issuer.accessSecret)
}

// VerifyRefresh verifies a refresh token.
func (issuer *Issuer) VerifyRefresh(token string) (*sec.Claims, error) {
	return issuer.codec.Verify(token, issuer.refreshSecret)
}
