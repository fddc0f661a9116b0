// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryRepository keeps tasks in process memory.
// It backs STORAGE_DRIVER=memory and the HTTP tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewMemoryRepository creates an empty in-memory [Repository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[string]*Task)}
}

// List filters, sorts newest first and pages the stored tasks.
func (repository *MemoryRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Task, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matched := make([]*Task, 0, len(repository.tasks))
	for _, task := range repository.tasks {
		if filter.UserID != "" && task.UserID != filter.UserID {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, task.Status) {
			continue
		}
		if filter.HideDeleted && task.IsDeleted {
			continue
		}
		clone := *task
		matched = append(matched, &clone)
	}

	slices.SortFunc(matched, func(a, b *Task) int {
		if cmp := b.CreatedAt.Compare(a.CreatedAt); cmp != 0 {
			return cmp
		}
		return strings.Compare(b.ID, a.ID)
	})

	total := len(matched)
	if offset >= total {
		return []*Task{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

// FindByID returns a copy of the stored task.
func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Task, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	task, found := repository.tasks[id]
	if !found {
		return nil, ErrNotFound
	}
	clone := *task
	return &clone, nil
}

// Create stores a copy of task.
func (repository *MemoryRepository) Create(_ context.Context, task *Task) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	stored := *task
	repository.tasks[task.ID] = &stored
	return nil
}

// Update replaces the mutable fields of the stored task.
func (repository *MemoryRepository) Update(_ context.Context, task *Task) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.tasks[task.ID]
	if !found {
		return ErrNotFound
	}

	task.UpdatedAt = time.Now().UTC()
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Status = task.Status
	stored.UpdatedAt = task.UpdatedAt
	return nil
}

// SoftDelete marks the stored task as deleted.
func (repository *MemoryRepository) SoftDelete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.tasks[id]
	if !found {
		return ErrNotFound
	}
	stored.IsDeleted = true
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes the stored task.
func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.tasks[id]; !found {
		return ErrNotFound
	}
	delete(repository.tasks, id)
	return nil
}
