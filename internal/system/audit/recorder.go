// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/navigant/backoffice/internal/platform/async"
	"github.com/navigant/backoffice/pkg/pagination"
	"github.com/navigant/backoffice/pkg/ulid"
)

// Sink accepts entries for eventual persistence. Domain handlers depend on
// this interface rather than on [*Recorder].
type Sink interface {
	Record(entry Entry)
}

// Recorder writes entries through a background [async.Dispatcher].
type Recorder struct {
	repository Repository
	dispatcher *async.Dispatcher
	logger     *slog.Logger
	now        func() time.Time
}

// NewRecorder creates a Recorder. The dispatcher must outlive the Recorder.
func NewRecorder(repository Repository, dispatcher *async.Dispatcher, logger *slog.Logger) *Recorder {
	return &Recorder{
		repository: repository,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Record stamps the entry and hands it to a background worker.
// It never blocks and never reports failure to the caller.
func (recorder *Recorder) Record(entry Entry) {
	createdAt := recorder.now().UTC()
	entry.CreatedAt = createdAt
	entry.ID = ulid.At(createdAt)

	accepted := recorder.dispatcher.Submit(func(ctx context.Context) error {
		if err := recorder.repository.Append(ctx, &entry); err != nil {
			recorder.logger.Warn("activity_log_write_failed",
				slog.String("action", entry.Action),
				slog.String("entity_type", entry.EntityType),
				slog.String("entity_id", entry.EntityID),
				slog.Any("error", err),
			)
		}
		return nil
	})

	if !accepted {
		recorder.logger.Warn("activity_log_dropped",
			slog.String("action", entry.Action),
			slog.String("entity_type", entry.EntityType),
		)
	}
}

// List returns a page of activity, newest first.
func (recorder *Recorder) List(ctx context.Context, page pagination.Params) ([]*Entry, int, error) {
	return recorder.repository.List(ctx, page)
}

// Discard is a [Sink] that drops every entry.
type Discard struct{}

// Record implements [Sink].
func (Discard) Record(Entry) {}
