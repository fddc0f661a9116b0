// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/platform/validate"
	"github.com/taibuivan/taskboard/pkg/normalize"
	"github.com/taibuivan/taskboard/pkg/uuid"
)

// Auth events reported to the [EventRecorder].
const (
	EventLogin    = "login"
	EventRegister = "register"
	EventRefresh  = "refresh"
	EventLogout   = "logout"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// EventRecorder counts auth events by outcome. [*metrics.Metrics] satisfies it.
type EventRecorder interface {
	RecordAuthEvent(event, outcome string)
}

// errInvalidCredentials is shared by every login failure so the response
// does not reveal whether the email exists.
var errInvalidCredentials = apperr.Unauthorized("Invalid email or password")

// errRefreshFailed is terminal for clients: they clear their session on it.
var errRefreshFailed = apperr.Unauthorized("Session expired, please log in again")

// ServiceOption configures optional [Service] behaviour.
type ServiceOption func(*Service)

// WithReloadUser makes Refresh re-read the user record by ID instead of
// trusting the claim inside the refresh token.
func WithReloadUser(reload bool) ServiceOption {
	return func(service *Service) { service.reloadUser = reload }
}

// WithEventRecorder attaches an [EventRecorder].
func WithEventRecorder(recorder EventRecorder) ServiceOption {
	return func(service *Service) { service.recorder = recorder }
}

// Service implements the registration, login and refresh use cases.
type Service struct {
	users      UserRepository
	hasher     sec.PasswordHasher
	issuer     *Issuer
	reloadUser bool
	recorder   EventRecorder
}

// NewService constructs a [Service] with its dependencies.
func NewService(users UserRepository, hasher sec.PasswordHasher, issuer *Issuer, opts ...ServiceOption) *Service {
	service := &Service{users: users, hasher: hasher, issuer: issuer}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Email    string
	Password string
	Role     sec.UserRole
}

// Register validates, hashes and persists a new account, then opens a session for it.
//
// # Business Rules
//   - Emails are unique after normalization; a duplicate yields 400.
//   - Role defaults to 'user'; only 'admin' and 'user' are accepted.
//   - Passwords need upper, lower, digit and one of @$!%*?&.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	session, err := service.register(ctx, input)
	service.record(EventRegister, err)
	return session, err
}

func (service *Service) register(ctx context.Context, input RegisterInput) (*Session, error) {

	// ── 1. Validation ─────────────────────────────────────────────────────

	email := normalize.Email(input.Email)
	role, knownRole := sec.ParseRole(string(input.Role))

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).MaxLen(FieldEmail, email, MaxEmailLength).Email(FieldEmail, email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, MinPasswordLength).StrongPassword(FieldPassword, input.Password)
	validator.Custom(FieldRole, !knownRole, fmt.Sprintf("Must be one of: %v", sec.Roles()))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Check ───────────────────────────────────────────────

	_, err := service.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	// The unique constraint still guards a concurrent registration.
	if err := service.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return service.open(user)
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and opens a session.
//
// Unknown emails and wrong passwords produce the same 401 so the endpoint
// cannot be used to enumerate accounts.
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	session, err := service.login(ctx, input)
	service.record(EventLogin, err)
	return session, err
}

func (service *Service) login(ctx context.Context, input LoginInput) (*Session, error) {
	email := normalize.Email(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			ctxutil.GetLogger(ctx).InfoContext(ctx, "login_failed", slog.String("reason", "unknown_email"))
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	if !service.hasher.Verify(user.PasswordHash, input.Password) {
		ctxutil.GetLogger(ctx).InfoContext(ctx, "login_failed",
			slog.String("reason", "wrong_password"),
			slog.String("user_id", user.ID),
		)
		return nil, errInvalidCredentials
	}

	return service.open(user)
}

// Refresh exchanges a refresh token for a new access token carrying the same claim.
//
// Any failure (missing, expired or forged token, or a vanished user when
// reloading is enabled) is reported as a terminal 401.
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	session, err := service.refresh(ctx, refreshToken)
	service.record(EventRefresh, err)
	return session, err
}

func (service *Service) refresh(ctx context.Context, refreshToken string) (*Session, error) {
	logger := ctxutil.GetLogger(ctx)

	if refreshToken == "" {
		return nil, errRefreshFailed
	}

	claims, err := service.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		logger.InfoContext(ctx, "refresh_rejected", slog.String("reason", err.Error()))
		return nil, errRefreshFailed
	}

	identity := claims.Identity()

	if service.reloadUser {
		user, err := service.users.FindByID(ctx, identity.ID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				logger.InfoContext(ctx, "refresh_rejected", slog.String("reason", "user_not_found"))
				return nil, errRefreshFailed
			}
			return nil, fmt.Errorf("auth_service_reload_failed: %w", err)
		}
		identity = user.Identity()
	}

	accessToken, err := service.issuer.IssueAccess(identity)
	if err != nil {
		return nil, err
	}

	return &Session{AccessToken: accessToken, User: identity}, nil
}

// RecordLogout reports a logout outcome; logout itself is stateless.
func (service *Service) RecordLogout(err error) {
	service.record(EventLogout, err)
}

// open issues the token pair for a verified user.
func (service *Service) open(user *User) (*Session, error) {
	identity := user.Identity()

	pair, err := service.issuer.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         identity,
	}, nil
}

func (service *Service) record(event string, err error) {
	if service.recorder == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	service.recorder.RecordAuthEvent(event, outcome)
}
