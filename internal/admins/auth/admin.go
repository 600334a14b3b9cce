// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements back-office identity: admin credentials, login, and
the resolution of session tokens back into live admin accounts.

# Architecture

  - Entities: [Admin] is the single source of truth for who may sign in.
  - Repository: [AdminRepository] (Postgres) and [AttemptLimiter] (Redis).
  - Service: login, principal resolution and first-run bootstrap.
  - Handler: login/logout/me over HTTP with the session cookie.

Tokens are stateless; every authenticated request re-reads the admin so a
deleted or disabled account loses access immediately.
*/
package auth

import (
	"strings"
	"time"

	"github.com/navigant/backoffice/internal/platform/sec"
)

// # Domain Entities

// Admin represents a back-office operator account.
type Admin struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never serialised.
	Role         sec.UserRole `json:"role"`
	Enabled      bool         `json:"enabled"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Principal projects the admin into the request identity.
func (a Admin) Principal() *sec.Principal {
	return &sec.Principal{
		AdminID: a.ID,
		Email:   a.Email,
		Name:    a.Name,
		Role:    a.Role,
	}
}

// WithName returns a copy with the display name replaced.
func (a Admin) WithName(name string) Admin {
	a.Name = name
	return a
}

// WithEmail returns a copy with the normalised email replaced.
func (a Admin) WithEmail(email string) Admin {
	a.Email = NormalizeEmail(email)
	return a
}

// WithPasswordHash returns a copy with new credentials.
func (a Admin) WithPasswordHash(hash string) Admin {
	a.PasswordHash = hash
	return a
}

// WithRole returns a copy with the role replaced.
func (a Admin) WithRole(role sec.UserRole) Admin {
	a.Role = role
	return a
}

// WithEnabled returns a copy with the enabled flag replaced.
func (a Admin) WithEnabled(enabled bool) Admin {
	a.Enabled = enabled
	return a
}

// Touched returns a copy stamped with a new modification time.
func (a Admin) Touched(at time.Time) Admin {
	a.UpdatedAt = at
	return a
}

// NormalizeEmail lower-cases and trims an address; emails are unique case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldEnabled  = "enabled"
)
