// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/auth"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

var userColumns = []string{"id", "email", "passwordhash", "role", "createdat", "updatedat"}

func newMockRepository(t *testing.T) (pgxmock.PgxPoolIface, *auth.PostgresUserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, auth.NewPostgresUserRepository(mock)
}

func TestPostgresUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	user := &auth.User{ID: "0190a000-0000-7000-8000-000000000001", Email: "a@example.com", PasswordHash: "$argon2id$x", Role: sec.RoleUser}

	t.Run("ok", func(t *testing.T) {
		mock, repository := newMockRepository(t)
		mock.ExpectExec(`INSERT INTO users \(id, email, passwordhash, role, createdat, updatedat\)`).
			WithArgs(user.ID, user.Email, user.PasswordHash, user.Role, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repository.Create(ctx, user))
		assert.False(t, user.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique_violation", func(t *testing.T) {
		mock, repository := newMockRepository(t)
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		assert.ErrorIs(t, repository.Create(ctx, user), auth.ErrUserExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other_error", func(t *testing.T) {
		mock, repository := newMockRepository(t)
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))

		err := repository.Create(ctx, user)
		assert.ErrorContains(t, err, "postgres_user_repo_create_failed")
		assert.NotErrorIs(t, err, auth.ErrUserExists)
	})
}

func TestPostgresUserRepository_Find(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("by_email", func(t *testing.T) {
		mock, repository := newMockRepository(t)
		mock.ExpectQuery(`SELECT id, email, passwordhash, role, createdat, updatedat FROM users WHERE email = \$1`).
			WithArgs("a@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("u1", "a@example.com", "$argon2id$x", sec.RoleAdmin, created, created))

		user, err := repository.FindByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, sec.RoleAdmin, user.Role)
		assert.Equal(t, created, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by_id_missing", func(t *testing.T) {
		mock, repository := newMockRepository(t)
		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		_, err := repository.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
