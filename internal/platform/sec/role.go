// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # Admin Roles

// UserRole represents the authorization level granted to an admin account.
type UserRole string

const (
	// Full access, including admin account management and the activity log
	RoleSuperAdmin UserRole = "SUPER_ADMIN"

	// Day-to-day back-office operator
	RoleAdmin UserRole = "ADMIN"
)

// ParseRole resolves a role name case-insensitively.
func ParseRole(raw string) (UserRole, bool) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(raw)))
	if role.level() == 0 {
		return "", false
	}
	return role, true
}

// Valid reports whether r is a recognised role.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level() && r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleSuperAdmin:
		return 20
	case RoleAdmin:
		return 10
	default:
		return 0
	}
}
