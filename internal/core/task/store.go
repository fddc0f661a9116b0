// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

// ErrNotFound is returned for missing tasks and for tasks the caller may not see.
var ErrNotFound = apperr.NotFound("Task")

// # Task Data Access

// Repository defines the data access contract for tasks.
type Repository interface {

	/*
		List returns a filtered, paginated slice of tasks and the total count,
		newest first.
	*/
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Task, int, error)

	// FindByID returns the task with the given ID, or [ErrNotFound].
	FindByID(ctx context.Context, id string) (*Task, error)

	// Create persists a new task.
	Create(ctx context.Context, task *Task) error

	// Update persists title, description and status, refreshing UpdatedAt.
	Update(ctx context.Context, task *Task) error

	// SoftDelete marks the task as deleted.
	SoftDelete(ctx context.Context, id string) error

	// Delete removes the task row.
	Delete(ctx context.Context, id string) error
}
