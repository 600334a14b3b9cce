// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns case study titles into ASCII URL keys
// (e.g. "ERP Rollout for ACME" -> "erp-rollout-for-acme").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From folds accents away and keeps only [a-z0-9] runs joined by single hyphens.
//
// Scripts with no ASCII folding (CJK, Cyrillic) produce an empty slug; callers
// treat that as a validation failure.
func From(s string) string {
	// Transformers carry state, so each call builds its own chain.
	stripMarks := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(folded) {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('-')
		}
		gap = false
		b.WriteRune(r)
	}
	return b.String()
}

// WithSuffix truncates base to maxLen bytes and appends "-suffix" when suffix is set.
func WithSuffix(base, suffix string, maxLen int) string {
	if maxLen > 0 && len(base) > maxLen {
		base = strings.TrimRight(base[:maxLen], "-")
	}
	if suffix == "" {
		return base
	}
	return base + "-" + suffix
}
