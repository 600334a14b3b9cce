// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ulid generates lexicographically sortable identifiers for
// append-only records such as activity log entries.
//
// Entries created within the same millisecond stay ordered thanks to the
// monotonic entropy source, so "ORDER BY id DESC" equals newest first.
package ulid

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// New returns a new ULID string for the current instant.
func New() string {
	return At(time.Now())
}

// At returns a new ULID string for the given instant.
func At(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
