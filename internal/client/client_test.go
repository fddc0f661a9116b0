// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/api"
	"github.com/taibuivan/taskboard/internal/auth"
	"github.com/taibuivan/taskboard/internal/client"
	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/platform/config"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/pkg/pointer"
)

const strongPassword = "Str0ng!Pass"

// newStack serves the real API over TLS so the Secure auth cookies are kept by the jar.
func newStack(t *testing.T) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handlers := api.BuildHandlers(api.Dependencies{
		Users:  auth.NewMemoryUserRepository(),
		Tasks:  task.NewMemoryRepository(),
		Hasher: sec.NewArgon2Hasher(sec.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}),
		Issuer: auth.NewIssuer(sec.NewTokenCodec("taskboard"), "access-secret", "refresh-secret"),
	}, logger)

	server := api.NewServer(ctx, api.Options{
		CORS: &config.Config{Environment: "development"},
	}, logger, handlers)

	httpServer := httptest.NewTLSServer(server.Handler())
	t.Cleanup(httpServer.Close)
	return httpServer
}

func newClient(t *testing.T, server *httptest.Server, httpClient *http.Client) *client.Client {
	t.Helper()
	if httpClient == nil {
		httpClient = server.Client()
	}
	api, err := client.New(server.URL+"/api", client.NewSession(), client.WithHTTPClient(httpClient))
	require.NoError(t, err)
	return api
}

func TestClient_EndToEndUserScopedTasks(t *testing.T) {
	server := newStack(t)
	ctx := context.Background()

	admin := newClient(t, server, nil)
	_, err := admin.Register(ctx, "root@example.com", strongPassword, "admin")
	require.NoError(t, err)
	assert.True(t, admin.Session().IsAdmin())

	alice := newClient(t, server, nil)
	_, err = alice.Register(ctx, "alice@example.com", strongPassword, "")
	require.NoError(t, err)

	bob := newClient(t, server, nil)
	_, err = bob.Register(ctx, "bob@example.com", strongPassword, "")
	require.NoError(t, err)

	// Log in again from a fresh client to exercise the login path.
	alice = newClient(t, server, nil)
	result, err := alice.Login(ctx, "alice@example.com", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.False(t, alice.Session().IsAdmin())

	own, err := alice.CreateTask(ctx, client.TaskInput{Title: "Alice's task"})
	require.NoError(t, err)
	_, err = bob.CreateTask(ctx, client.TaskInput{Title: "Bob's task"})
	require.NoError(t, err)

	aliceTasks, meta, err := alice.ListTasks(ctx, client.ListOptions{})
	require.NoError(t, err)
	require.Len(t, aliceTasks, 1)
	assert.Equal(t, own.ID, aliceTasks[0].ID)
	assert.Equal(t, 1, meta.Total)

	_, err = bob.GetTask(ctx, own.ID)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))

	updated, err := alice.UpdateTask(ctx, own.ID, client.TaskUpdate{Status: pointer.To("Completed")})
	require.NoError(t, err)
	assert.Equal(t, "Completed", updated.Status)

	allTasks, _, err := admin.ListTasks(ctx, client.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, allTasks, 2)

	_, err = alice.DeleteTask(ctx, own.ID)
	assert.True(t, client.IsStatus(err, http.StatusForbidden))
	assert.True(t, alice.Session().IsAuthenticated(), "a role denial must not end the session")

	deleted, err := admin.DeleteTask(ctx, own.ID)
	require.NoError(t, err)
	assert.False(t, deleted.Permanent)

	visible, _, err := alice.ListTasks(ctx, client.ListOptions{HideDeleted: true})
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestClient_EndToEndStaleTokenRefresh(t *testing.T) {
	server := newStack(t)
	ctx := context.Background()

	alice := newClient(t, server, nil)
	_, err := alice.Register(ctx, "alice@example.com", strongPassword, "")
	require.NoError(t, err)

	alice.Session().SetAccessToken("not-a-jwt")

	identity, err := alice.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.NotEqual(t, "not-a-jwt", alice.Session().AccessToken())
}

func TestClient_EndToEndLogout(t *testing.T) {
	server := newStack(t)
	ctx := context.Background()

	alice := newClient(t, server, nil)
	_, err := alice.Register(ctx, "alice@example.com", strongPassword, "")
	require.NoError(t, err)

	require.NoError(t, alice.Logout(ctx))
	assert.False(t, alice.Session().IsAuthenticated())

	_, err = alice.CurrentUser(ctx)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))

	_, err = alice.Refresh(ctx)
	assert.ErrorIs(t, err, client.ErrSessionExpired)
}

func TestClient_EndToEndRestoreFromCookie(t *testing.T) {
	server := newStack(t)
	ctx := context.Background()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	browser := server.Client()
	browser.Jar = jar

	first := newClient(t, server, browser)
	_, err = first.Register(ctx, "alice@example.com", strongPassword, "")
	require.NoError(t, err)

	// A new session on the same cookie jar, as after a page reload.
	reloaded := newClient(t, server, browser)
	require.False(t, reloaded.Session().IsAuthenticated())

	require.NoError(t, reloaded.Restore(ctx))
	assert.True(t, reloaded.Session().IsAuthenticated())
	require.NotNil(t, reloaded.Session().State().User)
	assert.Equal(t, "alice@example.com", reloaded.Session().State().User.Email)

	_, err = reloaded.CreateTask(ctx, client.TaskInput{Title: "after reload"})
	assert.NoError(t, err)
}
