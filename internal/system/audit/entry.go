// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audit records who changed what in the back office.

Entries are appended after a mutation has succeeded and are written by a
background worker; the triggering request never waits for, or fails because
of, the audit write. The log is best-effort and append-only.
*/
package audit

import (
	"net/http"
	"time"

	"github.com/navigant/backoffice/internal/platform/constants"
	"github.com/navigant/backoffice/internal/platform/ctxutil"
	"github.com/navigant/backoffice/internal/platform/middleware"
)

// # Actions

const (
	ActionLogin          = "LOGIN"
	ActionCreate         = "CREATE"
	ActionUpdate         = "UPDATE"
	ActionDelete         = "DELETE"
	ActionUpdateStatus   = "UPDATE_STATUS"
	ActionUpdateComments = "UPDATE_COMMENTS"
	ActionCreateLink     = "CREATE_LINK"
	ActionSubmit         = "SUBMIT"
)

// # Entity Types

const (
	EntityAdmin       = "ADMIN"
	EntityReview      = "REVIEW"
	EntityLead        = "LEAD"
	EntityCaseStudy   = "CASE_STUDY"
	EntityApplication = "APPLICATION"
)

// SystemActor marks entries produced outside of any request (bootstrap, jobs).
const SystemActor = constants.ActorSystem

// PublicActor marks entries produced by unauthenticated callers.
const PublicActor = constants.ActorPublic

// Entry is a single activity log row.
type Entry struct {
	ID         string    `json:"id"`
	AdminID    string    `json:"adminId"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ipAddress"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromRequest builds an entry attributed to the caller of request.
//
// The actor is the authenticated admin, or [PublicActor] when anonymous.
func FromRequest(request *http.Request, action, entityType, entityID, details string) Entry {
	actor := PublicActor
	if principal := ctxutil.GetPrincipal(request.Context()); principal != nil {
		actor = principal.AdminID
	}

	return Entry{
		AdminID:    actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  middleware.RealIP(request),
	}
}

// System builds an entry attributed to [SystemActor].
func System(action, entityType, entityID, details string) Entry {
	return Entry{
		AdminID:    SystemActor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
}
