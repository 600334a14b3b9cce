// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package application handles candidate applications to open job posts.
//
// Resumes are referenced by URL; storing the file itself is left to the
// media host that issued the link.
package application

import (
	"strings"
	"time"

	"github.com/navigant/backoffice/internal/platform/apperr"
)

// Status tracks a candidate through the hiring pipeline.
type Status string

const (
	StatusNew                Status = "NEW"
	StatusReviewed           Status = "REVIEWED"
	StatusShortlisted        Status = "SHORTLISTED"
	StatusInterviewScheduled Status = "INTERVIEW_SCHEDULED"
	StatusRejected           Status = "REJECTED"
	StatusHired              Status = "HIRED"
)

// Statuses lists every recognised status in pipeline order.
var Statuses = []Status{
	StatusNew, StatusReviewed, StatusShortlisted, StatusInterviewScheduled, StatusRejected, StatusHired,
}

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

// ErrAlreadyApplied is returned when the same email applies to a job twice.
var ErrAlreadyApplied = apperr.Conflict("You have already applied to this job")

// Application is one candidate's submission for one job post.
type Application struct {
	ID             string    `json:"id"`
	JobPostID      string    `json:"jobPostId"`
	JobTitle       string    `json:"jobTitle"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
	ApplicantPhone string    `json:"applicantPhone"`
	ResumeURL      string    `json:"resumeUrl,omitempty"`
	CoverLetter    string    `json:"coverLetter,omitempty"`
	Status         Status    `json:"status"`
	ReviewedBy     string    `json:"reviewedBy,omitempty"`
	AppliedAt      time.Time `json:"appliedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// WithStatus returns a copy moved to status by adminID.
func (a Application) WithStatus(status Status, adminID string, at time.Time) Application {
	a.Status = status
	a.ReviewedBy = adminID
	a.UpdatedAt = at
	return a
}

// # Field Identifiers & Limits

const (
	FieldJobPostID      = "jobPostId"
	FieldJobTitle       = "jobTitle"
	FieldApplicantName  = "applicantName"
	FieldApplicantEmail = "applicantEmail"
	FieldApplicantPhone = "applicantPhone"
	FieldResumeURL      = "resumeUrl"
	FieldCoverLetter    = "coverLetter"
	FieldStatus         = "status"

	MaxJobPostIDLength   = 64
	MaxJobTitleLength    = 200
	MaxNameLength        = 100
	MaxResumeURLLength   = 2048
	MaxCoverLetterLength = 5000
)
