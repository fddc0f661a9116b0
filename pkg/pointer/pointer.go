// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer helps with optional fields. A partial task update decodes
// absent JSON members as nil pointers.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T { return &v }

// Fallback returns *p, or fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
