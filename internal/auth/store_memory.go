// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryUserRepository keeps users in process memory.
// It backs STORAGE_DRIVER=memory and the HTTP tests.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

// NewMemoryUserRepository creates an empty in-memory [UserRepository].
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

// Create stores a copy of user.
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byEmail[user.Email]; taken {
		return ErrUserExists
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	stored := *user
	repository.byID[user.ID] = &stored
	repository.byEmail[user.Email] = user.ID
	return nil
}

// FindByID returns a copy of the stored user.
func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, found := repository.byID[id]
	if !found {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// FindByEmail returns a copy of the stored user.
func (repository *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	repository.mu.RLock()
	id, found := repository.byEmail[email]
	repository.mu.RUnlock()

	if !found {
		return nil, ErrUserNotFound
	}
	return repository.FindByID(ctx, id)
}
