// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"sync"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// State is a snapshot of the client session.
// A non-empty AccessToken means the session is authenticated.
type State struct {
	User        *sec.Identity
	AccessToken string
	IsLoading   bool
}

// Session holds the signed-in user and their access token.
//
// A Session is created by the caller and handed to [New]; several clients
// may share one. It is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	state State
}

// NewSession returns an empty, signed-out session.
func NewSession() *Session {
	return &Session{}
}

// State returns a copy of the current state.
func (session *Session) State() State {
	session.mu.RLock()
	defer session.mu.RUnlock()

	snapshot := session.state
	if snapshot.User != nil {
		user := *snapshot.User
		snapshot.User = &user
	}
	return snapshot
}

// Set stores the user and access token of a freshly opened session.
func (session *Session) Set(user sec.Identity, accessToken string) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.state.User = &user
	session.state.AccessToken = accessToken
}

// SetAccessToken replaces the access token and keeps the user.
func (session *Session) SetAccessToken(accessToken string) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.state.AccessToken = accessToken
}

// Clear signs the session out. The loading flag is left untouched.
func (session *Session) Clear() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.state.User = nil
	session.state.AccessToken = ""
}

// AccessToken returns the current access token, or "" when signed out.
func (session *Session) AccessToken() string {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.state.AccessToken
}

// IsAuthenticated reports whether an access token is held.
func (session *Session) IsAuthenticated() bool {
	return session.AccessToken() != ""
}

// IsAdmin reports whether the signed-in user has the admin role.
func (session *Session) IsAdmin() bool {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.state.User != nil && session.state.User.IsAdmin()
}

// IsLoading reports whether a session restore is in progress.
func (session *Session) IsLoading() bool {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.state.IsLoading
}

func (session *Session) setLoading(loading bool) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.state.IsLoading = loading
}
