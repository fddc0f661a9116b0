// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// UserRole is carried in the access token and checked by the role gate.
type UserRole string

const (
	// RoleAdmin sees every user's tasks and may delete them.
	RoleAdmin UserRole = "admin"
	// RoleUser is assigned when registration names no role.
	RoleUser UserRole = "user"
)

// Roles lists every assignable role, lowest privilege first.
func Roles() []UserRole { return []UserRole{RoleUser, RoleAdmin} }

// ParseRole accepts a role name in any case. An empty name is [RoleUser].
func ParseRole(name string) (UserRole, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return RoleUser, true
	}
	role := UserRole(name)
	return role, role.Valid()
}

func (r UserRole) Valid() bool { return r.rank() > 0 }

// AtLeast reports whether r grants everything target grants.
// Unknown roles grant nothing.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.rank() > 0 && r.rank() >= target.rank()
}

func (r UserRole) rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	}
	return 0
}
