// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TasksTable represents the 'tasks' table
type TasksTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Status      string
	IsDeleted   string
	UserID      string
	CreatedAt   string
	UpdatedAt   string
}

// Tasks is the schema definition for tasks
var Tasks = TasksTable{
	Table:       "tasks",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Status:      "status",
	IsDeleted:   "isdeleted",
	UserID:      "userid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names in scan order
func (t TasksTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.Status, t.IsDeleted, t.UserID, t.CreatedAt, t.UpdatedAt}
}
