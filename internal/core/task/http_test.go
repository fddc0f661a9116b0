// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/platform/middleware"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

// tokenTable resolves a bearer token to a fixed identity.
type tokenTable map[string]sec.Identity

func (table tokenTable) VerifyAccess(token string) (*sec.Claims, error) {
	identity, found := table[token]
	if !found {
		return nil, sec.ErrTokenInvalid
	}
	return &sec.Claims{UserID: identity.ID, Email: identity.Email, Role: identity.Role}, nil
}

var tokens = tokenTable{"alice": alice, "bob": bob, "admin": admin}

type taskBody struct {
	Data task.Task `json:"data"`
}

type listBody struct {
	Data []task.Task     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type deleteBody struct {
	Data struct {
		Message   string `json:"message"`
		Permanent bool   `json:"permanent"`
	} `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func newTaskRouter() http.Handler {
	router := chi.NewRouter()
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticate(tokens, nil))
		protected.Use(middleware.RequireAuth)
		protected.Mount("/tasks", task.NewHandler(newService()).Routes())
	})
	return router
}

func send(t *testing.T, router http.Handler, token, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var body T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func createViaHTTP(t *testing.T, router http.Handler, token, payload string) task.Task {
	t.Helper()
	recorder := send(t, router, token, http.MethodPost, "/tasks", payload)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	return decode[taskBody](t, recorder).Data
}

func TestHandler_RequiresCaller(t *testing.T) {
	router := newTaskRouter()

	anonymous := send(t, router, "", http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	stale := send(t, router, "expired", http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusForbidden, stale.Code)
	assert.Equal(t, "TOKEN_INVALID", decode[errorBody](t, stale).Code)
}

func TestHandler_CreateAndList(t *testing.T) {
	router := newTaskRouter()

	created := createViaHTTP(t, router, "alice", `{"title":"Ship it","description":"v1"}`)
	assert.Equal(t, task.StatusPending, created.Status)
	assert.Equal(t, alice.ID, created.UserID)
	createViaHTTP(t, router, "alice", `{"title":"Celebrate","status":"Completed"}`)
	createViaHTTP(t, router, "bob", `{"title":"Bob's"}`)

	own := send(t, router, "alice", http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, own.Code)
	ownBody := decode[listBody](t, own)
	assert.Len(t, ownBody.Data, 2)
	assert.Equal(t, 2, ownBody.Meta.Total)

	completed := decode[listBody](t, send(t, router, "alice", http.MethodGet, "/tasks?status=Completed", ""))
	require.Len(t, completed.Data, 1)
	assert.Equal(t, "Celebrate", completed.Data[0].Title)

	all := decode[listBody](t, send(t, router, "admin", http.MethodGet, "/tasks?limit=2", ""))
	assert.Len(t, all.Data, 2)
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 2, Total: 3, TotalPages: 2}, all.Meta)

	invalid := send(t, router, "alice", http.MethodGet, "/tasks?status=Archived", "")
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	missingTitle := send(t, router, "alice", http.MethodPost, "/tasks", `{"description":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, missingTitle.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorBody](t, missingTitle).Code)
}

func TestHandler_GetAndUpdateOwnership(t *testing.T) {
	router := newTaskRouter()
	created := createViaHTTP(t, router, "alice", `{"title":"Mine"}`)
	path := "/tasks/" + created.ID

	assert.Equal(t, http.StatusOK, send(t, router, "alice", http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, send(t, router, "bob", http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, send(t, router, "bob", http.MethodPut, path, `{"title":"Hijack"}`).Code)

	updated := send(t, router, "alice", http.MethodPut, path, `{"status":"Completed"}`)
	require.Equal(t, http.StatusOK, updated.Code)
	body := decode[taskBody](t, updated).Data
	assert.Equal(t, "Mine", body.Title)
	assert.Equal(t, task.StatusCompleted, body.Status)
}

func TestHandler_DeleteIsAdminOnlyAndTwoPhase(t *testing.T) {
	router := newTaskRouter()
	created := createViaHTTP(t, router, "alice", `{"title":"Old"}`)
	path := "/tasks/" + created.ID

	denied := send(t, router, "alice", http.MethodDelete, path, "")
	assert.Equal(t, http.StatusForbidden, denied.Code)
	assert.Equal(t, "FORBIDDEN", decode[errorBody](t, denied).Code)

	first := send(t, router, "admin", http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.False(t, decode[deleteBody](t, first).Data.Permanent)

	listed := decode[listBody](t, send(t, router, "alice", http.MethodGet, "/tasks", ""))
	require.Len(t, listed.Data, 1)
	assert.True(t, listed.Data[0].IsDeleted)

	hidden := decode[listBody](t, send(t, router, "alice", http.MethodGet, "/tasks?hideDeleted=true", ""))
	assert.Empty(t, hidden.Data)

	second := send(t, router, "admin", http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.True(t, decode[deleteBody](t, second).Data.Permanent)

	assert.Equal(t, http.StatusNotFound, send(t, router, "admin", http.MethodDelete, path, "").Code)
}
