// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package async runs best-effort background work off the request path.
//
// # Contract
//
//   - Submit never blocks. A full queue drops the task and reports it.
//   - Each task runs under its own timeout, detached from the request context.
//   - Panics and errors inside tasks are logged, never propagated.
//   - Close stops intake and drains whatever is already queued.
package async

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Task is a unit of background work.
type Task func(ctx context.Context) error

// Options configures a [Dispatcher].
type Options struct {
	// Name labels log lines and drop metrics ("audit", "notification").
	Name string
	// QueueSize bounds the number of pending tasks.
	QueueSize int
	// Workers is the number of goroutines consuming the queue.
	Workers int
	// TaskTimeout bounds a single task execution.
	TaskTimeout time.Duration
	// OnDrop is called when a task is rejected because the queue is full.
	OnDrop func(name string)
}

// Dispatcher is a bounded worker pool.
type Dispatcher struct {
	opts   Options
	logger *slog.Logger

	queue  chan Task
	quit   chan struct{}
	closed atomic.Bool
	once   sync.Once
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher and starts its workers.
func NewDispatcher(opts Options, logger *slog.Logger) *Dispatcher {
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.TaskTimeout <= 0 {
		opts.TaskTimeout = 5 * time.Second
	}

	d := &Dispatcher{
		opts:   opts,
		logger: logger.With(slog.String("queue", opts.Name)),
		queue:  make(chan Task, opts.QueueSize),
		quit:   make(chan struct{}),
	}

	for i := 0; i < opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Submit enqueues a task without blocking. It reports whether the task was accepted.
func (d *Dispatcher) Submit(task Task) bool {
	if d.closed.Load() {
		d.drop("dispatcher closed")
		return false
	}

	select {
	case d.queue <- task:
		return true
	default:
		d.drop("queue full")
		return false
	}
}

// Close stops accepting tasks and waits for queued ones to finish or ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() {
		d.closed.Store(true)
		close(d.quit)
	})

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("async: %s drain interrupted: %w", d.opts.Name, ctx.Err())
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case task := <-d.queue:
			d.run(task)
		case <-d.quit:
			// Drain what was accepted before shutdown
			for {
				select {
				case task := <-d.queue:
					d.run(task)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) run(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.opts.TaskTimeout)
	defer cancel()

	defer func() {
		if recovered := recover(); recovered != nil {
			d.logger.Error("async_task_panicked", slog.String("panic", fmt.Sprint(recovered)))
		}
	}()

	if err := task(ctx); err != nil {
		d.logger.Warn("async_task_failed", slog.String("error", err.Error()))
	}
}

func (d *Dispatcher) drop(reason string) {
	d.logger.Warn("async_task_dropped", slog.String("reason", reason))
	if d.opts.OnDrop != nil {
		d.opts.OnDrop(d.opts.Name)
	}
}
