// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review collects client testimonials through tokenized links.

# Workflow

An admin issues a link for a client. The client opens the public form by its
token, submits a rating, title and content, and the review waits as PENDING
until an admin approves or rejects it. Only APPROVED reviews are shown on the
public site, through the [PublicReview] projection.
*/
package review

import (
	"time"

	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/pkg/pointer"
)

// Status is the moderation state of a review.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus accepts the three recognised states, case-sensitively.
func ParseStatus(raw string) (Status, bool) {
	switch status := Status(raw); status {
	case StatusPending, StatusApproved, StatusRejected:
		return status, true
	}
	return "", false
}

// Review is the admin view of a testimonial.
type Review struct {
	ID            string     `json:"id"`
	Token         string     `json:"token"`
	ClientName    string     `json:"clientName"`
	ClientEmail   string     `json:"clientEmail"`
	ClientCompany string     `json:"clientCompany"`
	Rating        *int       `json:"rating"`
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	Status        Status     `json:"status"`
	ReviewedBy    string     `json:"reviewedBy,omitempty"`
	AdminNotes    string     `json:"adminNotes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	SubmittedAt   *time.Time `json:"submittedAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Moderated reports whether an admin has approved or rejected the review.
func (r Review) Moderated() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// ErrAlreadyModerated rejects client submissions once an admin has decided.
var ErrAlreadyModerated = apperr.Conflict("This review has already been processed")

// Submission is the client's answer set. Writing it touches only the answer
// columns, so it never overwrites a moderation decision.
type Submission struct {
	Rating  int
	Title   string
	Content string
	At      time.Time
}

// Decision is an admin moderation. Writing it touches only the moderation
// columns, so it never overwrites the client's answers.
type Decision struct {
	Status  Status
	AdminID string
	Notes   string
	At      time.Time
}

// WithSubmission returns a copy carrying the client's answers.
func (r Review) WithSubmission(s Submission) Review {
	r.Rating = pointer.To(s.Rating)
	r.Title = pointer.To(s.Title)
	r.Content = pointer.To(s.Content)
	r.SubmittedAt = pointer.To(s.At)
	r.UpdatedAt = s.At
	return r
}

// WithModeration returns a copy with the admin decision applied.
func (r Review) WithModeration(d Decision) Review {
	r.Status = d.Status
	r.ReviewedBy = d.AdminID
	r.AdminNotes = d.Notes
	r.UpdatedAt = d.At
	return r
}

// PublicReview is the testimonial as shown on the public site.
type PublicReview struct {
	ID            string     `json:"id"`
	ClientName    string     `json:"clientName"`
	ClientCompany string     `json:"clientCompany"`
	Rating        *int       `json:"rating"`
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	SubmittedAt   *time.Time `json:"submittedAt"`
}

// Public strips contact details, notes and moderation fields.
func (r Review) Public() PublicReview {
	return PublicReview{
		ID:            r.ID,
		ClientName:    r.ClientName,
		ClientCompany: r.ClientCompany,
		Rating:        r.Rating,
		Title:         r.Title,
		Content:       r.Content,
		SubmittedAt:   r.SubmittedAt,
	}
}

// ReviewForm is what the client sees when opening the link: enough to prefill
// the form, nothing an admin wrote.
type ReviewForm struct {
	ClientName    string     `json:"clientName"`
	ClientCompany string     `json:"clientCompany"`
	Rating        *int       `json:"rating"`
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	Status        Status     `json:"status"`
	SubmittedAt   *time.Time `json:"submittedAt"`
}

// Form projects the review for the public token endpoint.
func (r Review) Form() ReviewForm {
	return ReviewForm{
		ClientName:    r.ClientName,
		ClientCompany: r.ClientCompany,
		Rating:        r.Rating,
		Title:         r.Title,
		Content:       r.Content,
		Status:        r.Status,
		SubmittedAt:   r.SubmittedAt,
	}
}

// # Field Identifiers & Limits

const (
	FieldClientName    = "clientName"
	FieldClientEmail   = "clientEmail"
	FieldClientCompany = "clientCompany"
	FieldRating        = "rating"
	FieldTitle         = "title"
	FieldContent       = "content"
	FieldStatus        = "status"
	FieldAdminNotes    = "adminNotes"

	MaxClientNameLength    = 100
	MaxClientCompanyLength = 150
	MaxTitleLength         = 150
	MaxContentLength       = 5000
	MaxNotesLength         = 2000
	MinRating              = 1
	MaxRating              = 5

	// TokenBytes is the entropy of a review token before encoding.
	TokenBytes = 32

	// LinkPath is joined between the base URL and the token.
	LinkPath = "/review/"
)
