// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navigant/backoffice/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ERP Rollout for ACME", "erp-rollout-for-acme"},
		{"  Café Réseau: 2026  ", "cafe-reseau-2026"},
		{"Cloud -- Migration!!", "cloud-migration"},
		{"日本語", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.From(tt.in), tt.in)
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "erp-rollout-x1", slug.WithSuffix("erp-rollout", "x1", 80))
	assert.Equal(t, "erp-x1", slug.WithSuffix("erp-rollout", "x1", 4))
	assert.Equal(t, "erp", slug.WithSuffix("erp", "", 80))
}
