// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_account_email"}

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"No rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"Wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"Unique violation", unique, apperr.CodeConflict},
		{"Check violation", &pgconn.PgError{Code: pgerrcode.CheckViolation}, apperr.CodeValidation},
		{"Unknown", errors.New("connection reset"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dberr.Wrap(tt.err, "Admin", "insert_admin")
			assert.True(t, apperr.HasCode(err, tt.wantCode), "got %v", err)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Admin", "noop"))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
}
