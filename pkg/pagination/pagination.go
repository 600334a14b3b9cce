// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads ?page=&limit= from list requests and builds the
// "meta" block of paginated responses.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-indexed page window.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip for this window.
func (p Params) Offset() int {
	return max(p.Page-1, 0) * p.Limit
}

// Meta is serialized next to "data" in list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta fills TotalPages from total and limit.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest never fails: unparsable or non-positive values take their
// defaults and limit is capped at [MaxLimit].
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return Params{
		Page:  positive(query.Get("page"), DefaultPage),
		Limit: min(positive(query.Get("limit"), DefaultLimit), MaxLimit),
	}
}

func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
