// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages back-office admin accounts.

Creation and deletion are reserved for SUPER_ADMIN. Any admin may read the
roster and edit their own profile, but only a SUPER_ADMIN may change a role
or the enabled flag, and nobody may delete their own account.
*/
package account

import (
	"github.com/navigant/backoffice/internal/admins/auth"
)

// AccountRepository is the admin store as seen by account management.
type AccountRepository interface {
	auth.AdminRepository
}

// # Inputs

// CreateInput holds the fields for a new admin.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string // Optional; defaults to ADMIN.
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Enabled  *bool
}

// touchesPrivileges reports whether the update changes role or enabled flag.
func (in UpdateInput) touchesPrivileges() bool {
	return in.Role != nil || in.Enabled != nil
}
