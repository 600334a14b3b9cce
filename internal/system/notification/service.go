// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/navigant/backoffice/internal/platform/async"
	"github.com/navigant/backoffice/pkg/pagination"
	"github.com/navigant/backoffice/pkg/uuid"
)

// Notifier is what other domains use to send a message. Delivery happens in
// the background and failures never reach the caller.
type Notifier interface {
	Notify(to, subject, body string)
}

// Service records outbound messages and hands them to the [Mailer] off the request path.
type Service struct {
	repo       Repository
	mailer     Mailer
	dispatcher *async.Dispatcher
	logger     *slog.Logger
	onRecorded func(status string)
	now        func() time.Time
}

// Option customises a [Service].
type Option func(*Service)

// WithRecordedHook is called with the delivery status of every recorded notification.
func WithRecordedHook(hook func(status string)) Option {
	return func(s *Service) { s.onRecorded = hook }
}

// NewService constructs a new [Service]. Deliveries run on dispatcher.
func NewService(repo Repository, mailer Mailer, dispatcher *async.Dispatcher, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		repo:       repo,
		mailer:     mailer,
		dispatcher: dispatcher,
		logger:     logger,
		onRecorded: func(string) {},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Notify sends an email in the background and records the outcome.
func (service *Service) Notify(to, subject, body string) {
	accepted := service.dispatcher.Submit(func(ctx context.Context) error {
		return service.deliver(ctx, to, subject, body)
	})
	if !accepted {
		service.logger.Warn("notification_dropped", slog.String("subject", subject))
	}
}

// deliver runs on a dispatcher worker.
func (service *Service) deliver(ctx context.Context, to, subject, body string) error {
	status := StatusSent
	if err := service.mailer.Send(ctx, to, subject, body); err != nil {
		status = StatusFailed
		service.logger.Warn("notification_delivery_failed",
			slog.String("subject", subject),
			slog.Any("error", err),
		)
	}

	record := &Notification{
		ID:        uuid.New(),
		Recipient: to,
		Subject:   subject,
		Message:   body,
		Type:      TypeEmail,
		Status:    status,
		CreatedAt: service.now().UTC(),
	}
	if err := service.repo.Create(ctx, record); err != nil {
		service.logger.Warn("notification_record_failed", slog.Any("error", err))
		return nil
	}

	service.onRecorded(string(status))
	return nil
}

// List returns recorded notifications, newest first.
func (service *Service) List(ctx context.Context, page pagination.Params) ([]*Notification, int, error) {
	items, total, err := service.repo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("notification_service_list_failed: %w", err)
	}
	return items, total, nil
}

// UnreadCount backs the badge in the back-office header.
func (service *Service) UnreadCount(ctx context.Context) (int, error) {
	count, err := service.repo.CountUnread(ctx)
	if err != nil {
		return 0, fmt.Errorf("notification_service_unread_count_failed: %w", err)
	}
	return count, nil
}

// MarkAllRead clears the unread badge.
func (service *Service) MarkAllRead(ctx context.Context) error {
	changed, err := service.repo.MarkAllRead(ctx)
	if err != nil {
		return fmt.Errorf("notification_service_mark_all_read_failed: %w", err)
	}
	service.logger.InfoContext(ctx, "notifications_marked_read", slog.Int64("count", changed))
	return nil
}

// Discard is a [Notifier] that sends nothing.
type Discard struct{}

// Notify implements [Notifier].
func (Discard) Notify(string, string, string) {}
