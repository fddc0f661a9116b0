// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// Cache lookup results reported to the [CacheRecorder].
const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// CacheRecorder counts credential cache lookups. [*metrics.Metrics] satisfies it.
type CacheRecorder interface {
	RecordCacheLookup(result string)
}

// cachedUser is the Redis representation of a [User]. Unlike the API
// representation it includes the password hash, which login needs.
type cachedUser struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"passwordHash"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// CachedUserRepository decorates a [UserRepository] with a Redis read-through
// cache keyed by email. Redis failures are logged and fall through to the
// wrapped repository; they never fail a lookup.
type CachedUserRepository struct {
	inner    UserRepository
	client   redis.Cmdable
	ttl      time.Duration
	logger   *slog.Logger
	recorder CacheRecorder
}

// NewCachedUserRepository wraps inner. recorder may be nil.
func NewCachedUserRepository(inner UserRepository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger, recorder CacheRecorder) *CachedUserRepository {
	return &CachedUserRepository{
		inner:    inner,
		client:   client,
		ttl:      ttl,
		logger:   logger,
		recorder: recorder,
	}
}

func credentialKey(email string) string {
	return constants.RedisPrefixCredential + email
}

// FindByEmail serves from Redis when possible and populates it on a miss.
// Misses in the wrapped repository are not cached.
func (repository *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	key := credentialKey(email)

	raw, err := repository.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry cachedUser
		if decodeErr := json.Unmarshal(raw, &entry); decodeErr == nil {
			repository.record(cacheHit)
			return &User{
				ID:           entry.ID,
				Email:        entry.Email,
				PasswordHash: entry.PasswordHash,
				Role:         entry.Role,
				CreatedAt:    entry.CreatedAt,
				UpdatedAt:    entry.UpdatedAt,
			}, nil
		}
		repository.record(cacheError)
		repository.logger.WarnContext(ctx, "credential_cache_corrupt_entry", slog.String("key", key))
	case errors.Is(err, redis.Nil):
		repository.record(cacheMiss)
	default:
		repository.record(cacheError)
		repository.logger.WarnContext(ctx, "credential_cache_get_failed", slog.Any("error", err))
	}

	user, err := repository.inner.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	repository.store(ctx, user)
	return user, nil
}

// FindByID is not cached; it is only used by the refresh reload path.
func (repository *CachedUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.inner.FindByID(ctx, id)
}

// Create writes through to the wrapped repository, then primes the cache.
func (repository *CachedUserRepository) Create(ctx context.Context, user *User) error {
	if err := repository.inner.Create(ctx, user); err != nil {
		return err
	}
	repository.store(ctx, user)
	return nil
}

func (repository *CachedUserRepository) store(ctx context.Context, user *User) {
	payload, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		return
	}

	if err := repository.client.Set(ctx, credentialKey(user.Email), payload, repository.ttl).Err(); err != nil {
		repository.logger.WarnContext(ctx, "credential_cache_set_failed", slog.Any("error", err))
	}
}

func (repository *CachedUserRepository) record(result string) {
	if repository.recorder != nil {
		repository.recorder.RecordCacheLookup(result)
	}
}
