// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package lead handles public contact-form submissions and their follow-up.
package lead

import (
	"strings"
	"time"
)

// Status tracks a lead through the sales desk.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusContacted Status = "CONTACTED"
	StatusQualified Status = "QUALIFIED"
	StatusConverted Status = "CONVERTED"
	StatusClosed    Status = "CLOSED"
)

// Statuses lists every recognised status in pipeline order.
var Statuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusClosed}

// ParseStatus accepts a status case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for _, status := range Statuses {
		if string(status) == raw {
			return status, true
		}
	}
	return "", false
}

// Lead is a sales enquiry from the public site.
type Lead struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	ServiceType   string    `json:"serviceType"`
	NumberOfSeats int       `json:"numberOfSeats"`
	Remarks       string    `json:"remarks"`
	AdminComments string    `json:"adminComments"`
	Status        Status    `json:"status"`
	ReviewedBy    string    `json:"reviewedBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// WithStatus returns a copy moved to status by adminID.
func (l Lead) WithStatus(status Status, adminID string, at time.Time) Lead {
	l.Status = status
	l.ReviewedBy = adminID
	l.UpdatedAt = at
	return l
}

// WithComments returns a copy with the internal comments replaced.
func (l Lead) WithComments(comments, adminID string, at time.Time) Lead {
	l.AdminComments = comments
	l.ReviewedBy = adminID
	l.UpdatedAt = at
	return l
}

// # Field Identifiers & Limits

const (
	FieldFullName      = "fullName"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldServiceType   = "serviceType"
	FieldNumberOfSeats = "numberOfSeats"
	FieldRemarks       = "remarks"
	FieldComments      = "comments"
	FieldStatus        = "status"

	MaxNameLength     = 100
	MaxPhoneLength    = 30
	MaxServiceLength  = 100
	MaxRemarksLength  = 2000
	MaxCommentsLength = 2000
	MaxSeats          = 100000
)
