// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/taskboard/internal/auth"
	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/platform/metrics"
	"github.com/taibuivan/taskboard/internal/platform/middleware"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// Dependencies are the stores and primitives the HTTP handlers are built from.
// cmd/api fills it from configuration; tests fill it with in-memory stores.
type Dependencies struct {
	Users  auth.UserRepository
	Tasks  task.Repository
	Hasher sec.PasswordHasher
	Issuer *auth.Issuer

	// Metrics may be nil; every recorder method is nil-safe.
	Metrics *metrics.Metrics

	// ReloadUser re-reads the user record on refresh.
	ReloadUser bool

	// CredentialLimit throttles login and register. Nil disables it.
	CredentialLimit func(http.Handler) http.Handler

	Health HealthDependencies
}

// BuildHandlers wires services and handlers for every route group.
func BuildHandlers(deps Dependencies, log *slog.Logger) Handlers {
	gate := middleware.Authenticate(deps.Issuer, deps.Metrics)

	authService := auth.NewService(deps.Users, deps.Hasher, deps.Issuer,
		auth.WithReloadUser(deps.ReloadUser),
		auth.WithEventRecorder(deps.Metrics),
	)

	liveness, readiness := NewHealthHandlers(deps.Health, log)

	return Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   deps.Metrics.Handler(),
		Gate:      gate,
		Auth: auth.NewHandler(authService, auth.Guards{
			Authenticate:    gate,
			CredentialLimit: deps.CredentialLimit,
		}),
		Task: task.NewHandler(task.NewService(deps.Tasks)),
	}
}
