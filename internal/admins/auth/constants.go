// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Credential Constraints

const (
	// MaxNameLength bounds the display name.
	MaxNameLength = 100

	// MinPasswordLength and MaxPasswordLength bound plain-text passwords.
	// bcrypt only reads the first 72 bytes, the upper bound keeps requests sane.
	MinPasswordLength = 8
	MaxPasswordLength = 128

	// BootstrapAdminName is the display name of the seeded super admin.
	BootstrapAdminName = "Super Admin"
)
