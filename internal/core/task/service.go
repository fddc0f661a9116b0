// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/platform/validate"
	"github.com/taibuivan/taskboard/pkg/pagination"
	"github.com/taibuivan/taskboard/pkg/pointer"
	"github.com/taibuivan/taskboard/pkg/uuid"
)

// # Service Layer

// Service enforces ownership and validation for task operations.
// Every method takes the caller's identity as resolved by the auth gate.
type Service struct {
	repo Repository
}

// NewService constructs a new task [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Queries

/*
List returns one page of the tasks the caller may see.

Administrators see every task; everyone else is restricted to their own,
whatever UserID the filter carries.
*/
func (service *Service) List(ctx context.Context, caller sec.Identity, filter Filter, page pagination.Params) ([]*Task, pagination.Meta, error) {
	validator := &validate.Validator{}
	for _, status := range filter.Statuses {
		validator.Custom(FieldStatus, !status.Valid(), "Unknown status "+string(status))
	}
	if err := validator.Err(); err != nil {
		return nil, pagination.Meta{}, err
	}

	if !caller.IsAdmin() {
		filter.UserID = caller.ID
	}

	page = page.Normalize()
	tasks, total, err := service.repo.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return tasks, pagination.NewMeta(page, total), nil
}

// Get returns a single task the caller may see.
func (service *Service) Get(ctx context.Context, caller sec.Identity, id string) (*Task, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	task, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && task.UserID != caller.ID {
		return nil, ErrNotFound
	}

	return task, nil
}

// # Commands

// Create adds a task owned by the caller. Status defaults to Pending.
func (service *Service) Create(ctx context.Context, caller sec.Identity, input CreateInput) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		UserID:      caller.ID,
	}
	if task.Status == "" {
		task.Status = StatusPending
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "task_created",
		slog.String("task_id", task.ID),
		slog.String("user_id", caller.ID),
	)

	return task, nil
}

// Update applies a partial update to a task the caller owns (or any task for admins).
func (service *Service) Update(ctx context.Context, caller sec.Identity, id string, input UpdateInput) (*Task, error) {
	task, err := service.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(pointer.Fallback(input.Title, task.Title))
	task.Description = strings.TrimSpace(pointer.Fallback(input.Description, task.Description))
	task.Status = pointer.Fallback(input.Status, task.Status)

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

/*
Delete removes a task in two phases and reports whether the row is gone.

The first call marks the task as deleted; a call on an already-deleted task
removes it for good. Only administrators may delete.
*/
func (service *Service) Delete(ctx context.Context, caller sec.Identity, id string) (permanent bool, err error) {
	if !caller.IsAdmin() {
		return false, apperr.Forbidden("Only administrators can delete tasks")
	}

	task, err := service.Get(ctx, caller, id)
	if err != nil {
		return false, err
	}

	logger := ctxutil.GetLogger(ctx)

	if task.IsDeleted {
		if err := service.repo.Delete(ctx, id); err != nil {
			return false, err
		}
		logger.InfoContext(ctx, "task_purged", slog.String("task_id", id))
		return true, nil
	}

	if err := service.repo.SoftDelete(ctx, id); err != nil {
		return false, err
	}
	logger.InfoContext(ctx, "task_soft_deleted", slog.String("task_id", id))
	return false, nil
}

func validateTask(task *Task) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, task.Title).MaxLen(FieldTitle, task.Title, MaxTitleLength)
	validator.MaxLen(FieldDescription, task.Description, MaxDescriptionLength)
	validator.OneOf(FieldStatus, string(task.Status), string(StatusPending), string(StatusCompleted))
	return validator.Err()
}
