// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"unique_violation", fmt.Errorf("insert: %w", unique), http.StatusConflict},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := apperr.As(dberr.Wrap(tt.err, "query"))
			if assert.NotNil(t, wrapped) {
				assert.Equal(t, tt.wantStatus, wrapped.HTTPStatus)
			}
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "query"))
	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.False(t, dberr.IsUniqueViolation(errors.New("x")))
}
