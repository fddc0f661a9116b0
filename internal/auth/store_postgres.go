// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/taskboard/internal/platform/database/schema"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db postgres.DB
}

// NewPostgresUserRepository creates a PostgreSQL-backed [UserRepository].
func NewPostgresUserRepository(db postgres.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var selectUserQuery = fmt.Sprintf(`SELECT %s FROM %s`,
	strings.Join(schema.Users.Columns(), ", "), schema.Users.Table)

/*
Create persists a new user record.

Returns [ErrUserExists] when the unique email constraint rejects the row.
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.Users.Table, strings.Join(schema.Users.Columns(), ", "))

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// FindByEmail retrieves a user record by its normalized email address.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := selectUserQuery + fmt.Sprintf(` WHERE %s = $1`, schema.Users.Email)
	return repository.scanOne(ctx, "find_by_email", query, email)
}

// FindByID retrieves a user record by its ID.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := selectUserQuery + fmt.Sprintf(` WHERE %s = $1`, schema.Users.ID)
	return repository.scanOne(ctx, "find_by_id", query, id)
}

func (repository *PostgresUserRepository) scanOne(ctx context.Context, action, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_%s_failed: %w", action, err)
	}

	return user, nil
}
