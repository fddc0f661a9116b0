// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestSuccessShapes(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Created(recorder, map[string]string{"id": "t-1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
	assert.Equal(t, map[string]any{"data": map[string]any{"id": "t-1"}}, decodeBody(t, recorder))

	recorder = httptest.NewRecorder()
	respond.Paginated(recorder, []string{"a", "b"}, pagination.NewMeta(pagination.Params{Page: 1, Limit: 2}, 3))

	body := decodeBody(t, recorder)
	assert.Equal(t, []any{"a", "b"}, body["data"])
	assert.Contains(t, body, "meta")
}

func TestError(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("app_error", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Error(recorder, request, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: "title", Message: "is required"}))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Equal(t, "Validation failed", body["error"])
		assert.Len(t, body["details"], 1)
	})

	t.Run("wrapped_app_error", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Error(recorder, request, errors.Join(errors.New("lookup"), apperr.NotFound("Task")))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "Task not found", decodeBody(t, recorder)["error"])
	})

	t.Run("plain_error_is_hidden", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Error(recorder, request, errors.New("pq: relation tasks does not exist"))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "INTERNAL_ERROR", body["code"])
		assert.NotContains(t, body["error"], "relation")
	})

	t.Run("retry_after", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Error(recorder, request, apperr.RateLimited(3))

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.Equal(t, "3", recorder.Header().Get("Retry-After"))
	})
}
