// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"log/slog"
)

// Mailer delivers a message to an external channel.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes messages to the structured log instead of delivering them.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a [Mailer] that writes messages to logger.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements [Mailer]. It never fails.
func (mailer *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	mailer.logger.InfoContext(ctx, "email_outbound",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_length", len(body)),
	)
	return nil
}
