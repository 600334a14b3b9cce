// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package async_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navigant/backoffice/internal/platform/async"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestDispatcher_RunsAndDrains verifies that every accepted task runs before Close returns.
*/
func TestDispatcher_RunsAndDrains(t *testing.T) {
	d := async.NewDispatcher(async.Options{Name: "test", QueueSize: 64, Workers: 3}, discardLogger())

	var ran atomic.Int32
	for i := 0; i < 50; i++ {
		require.True(t, d.Submit(func(context.Context) error {
			ran.Add(1)
			return nil
		}))
	}

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, int32(50), ran.Load())

	// Submissions after close are rejected
	assert.False(t, d.Submit(func(context.Context) error { return nil }))
}

/*
TestDispatcher_DropsWhenFull verifies that Submit never blocks the caller.
*/
func TestDispatcher_DropsWhenFull(t *testing.T) {
	var dropped atomic.Int32
	d := async.NewDispatcher(async.Options{
		Name:      "test",
		QueueSize: 1,
		Workers:   1,
		OnDrop:    func(string) { dropped.Add(1) },
	}, discardLogger())

	release := make(chan struct{})
	started := make(chan struct{})

	// 1. Occupy the only worker
	require.True(t, d.Submit(func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	// 2. Fill the queue, then overflow it
	require.True(t, d.Submit(func(context.Context) error { return nil }))

	done := make(chan bool)
	go func() { done <- d.Submit(func(context.Context) error { return nil }) }()

	select {
	case accepted := <-done:
		assert.False(t, accepted)
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}
	assert.Equal(t, int32(1), dropped.Load())

	close(release)
	require.NoError(t, d.Close(context.Background()))
}

/*
TestDispatcher_IsolatesFailures verifies that failing or panicking tasks do not stop workers.
*/
func TestDispatcher_IsolatesFailures(t *testing.T) {
	d := async.NewDispatcher(async.Options{Name: "test", QueueSize: 8, Workers: 1, TaskTimeout: time.Second}, discardLogger())

	var ran atomic.Int32
	d.Submit(func(context.Context) error { return errors.New("store unavailable") })
	d.Submit(func(context.Context) error { panic("boom") })
	d.Submit(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		ran.Add(1)
		return nil
	})

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, int32(1), ran.Load())
}
