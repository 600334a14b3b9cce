// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package notification keeps a record of every outbound message and serves
// the unread badge in the back-office header.
package notification

import "time"

// Type classifies the delivery channel.
type Type string

const (
	TypeEmail  Type = "EMAIL"
	TypeSystem Type = "SYSTEM"
)

// Status is the delivery outcome.
type Status string

const (
	StatusSent   Status = "SENT"
	StatusFailed Status = "FAILED"
)

// Notification is a single outbound message record.
type Notification struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	Status    Status    `json:"status"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
