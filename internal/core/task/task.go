// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task manages the task records users keep behind the auth boundary.

# Ownership

Every task belongs to the user who created it. Regular users see and edit only
their own tasks; administrators see and edit all of them and are the only ones
allowed to delete. Tasks owned by someone else are reported as not found.

# Deletion

Deletion is two-phase: the first delete marks the task as deleted, a second
delete on an already-deleted task removes the row.
*/
package task

import "time"

// # Task Enums

// Status is the progress state of a task.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// # Core Entities

// Task is a single to-do item owned by a user.
type Task struct {
	ID          string    `json:"id"` // UUIDv7
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	IsDeleted   bool      `json:"isDeleted"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// # Search & Filtering

// Filter narrows a task listing.
type Filter struct {
	// UserID restricts the listing to one owner. Empty means every owner.
	UserID string

	// Statuses keeps only tasks in one of the given states. Empty means any.
	Statuses []Status

	// HideDeleted drops soft-deleted tasks.
	HideDeleted bool
}

// # Inputs

// CreateInput holds the fields of a new task.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// UpdateInput holds a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
)

// # Constraints

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)
