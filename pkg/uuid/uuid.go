// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid mints the primary keys of users and tasks.
//
// Keys are UUIDv7 so that new rows land at the right edge of the PostgreSQL
// primary-key index and "ORDER BY id" approximates creation order.
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 in canonical string form. It panics only if the
// system entropy source fails.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Valid reports whether s is a UUID of any version. Task IDs are checked with
// it before reaching the store so malformed IDs read as "not found".
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
