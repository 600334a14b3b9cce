// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/navigant?sslmode=disable", "pgx5://u:p@db:5432/navigant?sslmode=disable"},
		{"postgresql://u:p@db/navigant", "pgx5://u:p@db/navigant"},
		{"pgx5://u:p@db/navigant", "pgx5://u:p@db/navigant"},
		{"host=db user=u dbname=navigant", "host=db user=u dbname=navigant"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toPgx5DSN(tt.in))
	}
}
