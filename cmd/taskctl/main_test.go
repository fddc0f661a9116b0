// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/api"
	"github.com/taibuivan/taskboard/internal/auth"
	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/platform/config"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

func newTestServer(t *testing.T) *httptest.Server {
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
	server := api.NewServer(ctx, api.Options{CORS: &config.Config{Environment: "development"}}, logger, handlers)

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)
	return httpServer
}

// run executes one taskctl invocation and returns its output.
func run(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--url", server.URL + "/api"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTaskctl_Flow(t *testing.T) {
	server := newTestServer(t)
	admin := []string{"--email", "root@example.com", "--password", "Str0ng!Pass"}

	_, err := run(t, server, append(admin, "register", "--role", "admin")...)
	require.NoError(t, err)

	out, err := run(t, server, append(admin, "whoami")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"role": "admin"`)

	out, err = run(t, server, append(admin, "tasks", "create", "--title", "From the CLI")...)
	require.NoError(t, err)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.NotEmpty(t, created.ID)

	out, err = run(t, server, append(admin, "tasks", "update", created.ID, "--status", "Completed")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "Completed"`)
	assert.Contains(t, out, `"title": "From the CLI"`)

	out, err = run(t, server, append(admin, "tasks", "list", "--status", "Completed")...)
	require.NoError(t, err)
	assert.Contains(t, out, created.ID)

	out, err = run(t, server, append(admin, "tasks", "delete", created.ID)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"permanent": false`)

	out, err = run(t, server, append(admin, "tasks", "delete", created.ID)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"permanent": true`)

	_, err = run(t, server, append(admin, "tasks", "get", created.ID)...)
	assert.Error(t, err)
}

func TestTaskctl_RequiresCredentials(t *testing.T) {
	t.Setenv("TASKBOARD_EMAIL", "")
	t.Setenv("TASKBOARD_PASSWORD", "")
	server := newTestServer(t)

	_, err := run(t, server, "whoami")
	assert.EqualError(t, err, "--email and --password are required")
}

func TestTaskctl_BadLogin(t *testing.T) {
	server := newTestServer(t)

	_, err := run(t, server, "--email", "nobody@example.com", "--password", "Str0ng!Pass", "whoami")
	assert.ErrorContains(t, err, "401")
}

func TestTaskctl_URLFlagNotesHTTPS(t *testing.T) {
	t.Setenv("TASKBOARD_URL", "")
	cmd := newRootCmd()

	flag := cmd.PersistentFlags().Lookup("url")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "https")
	assert.Contains(t, cmd.Long, "Secure")
}
