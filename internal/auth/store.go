// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

var (
	// ErrUserNotFound is returned by every [UserRepository] lookup that misses.
	ErrUserNotFound = apperr.NotFound("User")

	// ErrUserExists is returned by [UserRepository.Create] when the email is taken.
	ErrUserExists = apperr.BadRequest("User already exists")
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Emails are stored and looked up in their normalized form; callers
// normalize before calling.
type UserRepository interface {

	// FindByID returns the account with the given ID, or [ErrUserNotFound].
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email, or [ErrUserNotFound].
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a new account. It returns [ErrUserExists] on a duplicate email.
	Create(ctx context.Context, user *User) error
}
