// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Principal is the authenticated admin attached to a request.
type Principal struct {
	AdminID string
	Email   string
	Name    string
	Role    UserRole
}

// Is reports whether the principal is the admin with the given id.
func (p *Principal) Is(adminID string) bool {
	return p != nil && p.AdminID == adminID
}

// Has reports whether the principal holds at least the given role.
func (p *Principal) Has(role UserRole) bool {
	return p != nil && p.Role.AtLeast(role)
}
