// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

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

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a PostgreSQL-backed [Repository].
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var taskColumns = strings.Join(schema.Tasks.Columns(), ", ")

/*
List returns the tasks matching filter, newest first, with the total match count.

The total comes from a window function so one round trip serves both.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Task, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s WHERE TRUE`, taskColumns, schema.Tasks.Table))

	args := []any{}
	argID := 1

	if filter.UserID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Tasks.UserID, argID))
		args = append(args, filter.UserID)
		argID++
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			statuses[i] = string(status)
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", schema.Tasks.Status, argID))
		args = append(args, statuses)
		argID++
	}

	if filter.HideDeleted {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = FALSE", schema.Tasks.IsDeleted))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		schema.Tasks.CreatedAt, schema.Tasks.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tasks")
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	var total int
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.Status, &task.IsDeleted,
			&task.UserID, &task.CreatedAt, &task.UpdatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_task")
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_tasks")
	}

	return tasks, total, nil
}

// FindByID retrieves a single task by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, taskColumns, schema.Tasks.Table, schema.Tasks.ID)

	task := &Task{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.IsDeleted,
		&task.UserID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dberr.Wrap(err, "find_task")
	}

	return task, nil
}

// Create persists a new task.
func (repository *PostgresRepository) Create(ctx context.Context, task *Task) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, schema.Tasks.Table, taskColumns)

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.IsDeleted,
		task.UserID, task.CreatedAt, task.UpdatedAt,
	)
	return dberr.Wrap(err, "create_task")
}

// Update persists the mutable fields of a task.
func (repository *PostgresRepository) Update(ctx context.Context, task *Task) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.Tasks.Table,
		schema.Tasks.Title, schema.Tasks.Description, schema.Tasks.Status, schema.Tasks.UpdatedAt,
		schema.Tasks.ID,
	)

	task.UpdatedAt = time.Now().UTC()
	tag, err := repository.db.Exec(ctx, query, task.ID, task.Title, task.Description, task.Status, task.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_task")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks a task as deleted.
func (repository *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = $2 WHERE %s = $1`,
		schema.Tasks.Table, schema.Tasks.IsDeleted, schema.Tasks.UpdatedAt, schema.Tasks.ID)

	tag, err := repository.db.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "soft_delete_task")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task row.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Tasks.Table, schema.Tasks.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_task")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
