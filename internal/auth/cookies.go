// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/taibuivan/taskboard/internal/platform/constants"
)

// AccessCookie carries the access token for browser clients.
func AccessCookie(token string) *http.Cookie {
	return authCookie(constants.AccessTokenCookieName, token, int(AccessTokenTTL.Seconds()))
}

// RefreshCookie carries the refresh token. It is the only way the refresh
// token leaves the server.
func RefreshCookie(token string) *http.Cookie {
	return authCookie(constants.RefreshTokenCookieName, token, int(RefreshTokenTTL.Seconds()))
}

// ClearCookie expires the named auth cookie in the browser.
func ClearCookie(name string) *http.Cookie {
	return authCookie(name, "", -1)
}

// authCookie builds the shared profile: HTTP-only, Secure and sent on
// cross-site requests so a separately hosted frontend can use it.
func authCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.AuthCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
