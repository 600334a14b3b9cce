// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ulid_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/navigant/backoffice/pkg/ulid"
)

func TestAt_MonotonicWithinMillisecond(t *testing.T) {
	instant := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = ulid.At(instant)
	}

	assert.True(t, sort.StringsAreSorted(ids))
	assert.Len(t, ids[0], 26)
}
