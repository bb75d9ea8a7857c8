// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Webhook event types
const (
	EventPageCreated          = "page.created"
	EventPageUpdated          = "page.updated"
	EventPageDeleted          = "page.deleted"
	EventGlobalSectionUpdated = "global.section.updated"
	EventPostCreated          = "post.created"
	EventPostUpdated          = "post.updated"
	EventPostDeleted          = "post.deleted"
	EventMediaCreated         = "media.created"
	EventMediaDeleted         = "media.deleted"
	EventUserCreated          = "user.created"
	EventUserDeleted          = "user.deleted"
)

// Webhook delivery statuses. Delivery is single-attempt: a failed delivery
// is recorded and never retried.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// AllWebhookEvents returns all available webhook event types.
func AllWebhookEvents() []string {
	return []string{
		EventPageCreated,
		EventPageUpdated,
		EventPageDeleted,
		EventGlobalSectionUpdated,
		EventPostCreated,
		EventPostUpdated,
		EventPostDeleted,
		EventMediaCreated,
		EventMediaDeleted,
		EventUserCreated,
		EventUserDeleted,
	}
}

// Webhook represents a webhook configuration.
type Webhook struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Secret    string    `json:"-"` // Never expose in JSON
	Events    string    `json:"-"` // JSON array stored as string
	IsActive  bool      `json:"is_active"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WebhookDelivery records one fire-and-forget delivery.
type WebhookDelivery struct {
	ID           int64         `json:"id"`
	WebhookID    int64         `json:"webhook_id"`
	Event        string        `json:"event"`
	Payload      string        `json:"payload"`
	ResponseCode sql.NullInt64 `json:"response_code,omitempty"`
	DeliveredAt  sql.NullTime  `json:"delivered_at,omitempty"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// GenerateWebhookSecret generates a random secret for webhook signing.
func GenerateWebhookSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GetEvents parses the JSON events string into a slice.
func (w *Webhook) GetEvents() []string {
	var events []string
	if w.Events == "" || w.Events == "[]" {
		return events
	}
	_ = json.Unmarshal([]byte(w.Events), &events)
	return events
}

// SetEvents sets the events from a slice to JSON string.
func (w *Webhook) SetEvents(events []string) {
	if len(events) == 0 {
		w.Events = "[]"
		return
	}
	data, _ := json.Marshal(events)
	w.Events = string(data)
}

// HasEvent checks if the webhook is subscribed to a specific event.
func (w *Webhook) HasEvent(event string) bool {
	for _, e := range w.GetEvents() {
		if e == event {
			return true
		}
	}
	return false
}
