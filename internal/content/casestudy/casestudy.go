// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package casestudy is the CMS for client case studies.

Admins draft and publish entries; the public site reads published entries by
slug. Slugs are derived from the title once and stay stable across edits
unless an admin renames them explicitly.
*/
package casestudy

import (
	"time"

	"github.com/navigant/backoffice/pkg/pointer"
)

// Status is the publication state.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

// ParseStatus accepts DRAFT or PUBLISHED.
func ParseStatus(raw string) (Status, bool) {
	switch status := Status(raw); status {
	case StatusDraft, StatusPublished:
		return status, true
	}
	return "", false
}

// CaseStudy is a CMS entry.
type CaseStudy struct {
	ID           string     `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	FullContent  string     `json:"fullContent"`
	Image        string     `json:"image"`
	Category     string     `json:"category"`
	Alt          string     `json:"alt"`
	Status       Status     `json:"status"`
	DisplayOrder int        `json:"displayOrder"`
	PublishDate  *time.Time `json:"publishDate"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Published reports whether the entry is visible on the public site.
func (c CaseStudy) Published() bool {
	return c.Status == StatusPublished
}

// WithStatus returns a copy in the given state. The first publication stamps
// PublishDate unless one was set explicitly.
func (c CaseStudy) WithStatus(status Status, at time.Time) CaseStudy {
	c.Status = status
	if status == StatusPublished && c.PublishDate == nil {
		c.PublishDate = pointer.To(at)
	}
	return c
}

// # Field Identifiers & Limits

const (
	FieldSlug         = "slug"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldFullContent  = "fullContent"
	FieldImage        = "image"
	FieldCategory     = "category"
	FieldAlt          = "alt"
	FieldStatus       = "status"
	FieldDisplayOrder = "displayOrder"

	MaxTitleLength       = 200
	MaxSlugLength        = 120
	MaxDescriptionLength = 1000
	MaxContentLength     = 100000
	MaxCategoryLength    = 100
	MaxAltLength         = 250
	MaxImageLength       = 2048
)
