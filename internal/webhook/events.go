// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package webhook provides fire-and-forget webhook event dispatching.
// Delivery is a best-effort notification channel: a mutation never blocks
// on delivery and a failed delivery is recorded, logged and never retried.
package webhook

import (
	"time"
)

// Event represents a webhook event to be dispatched.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent creates a new webhook event.
func NewEvent(eventType string, data any) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// PageEventData contains data for dynamic page events.
type PageEventData struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	IsPublished bool   `json:"isPublished"`
}

// GlobalSectionEventData contains data for global page section updates.
type GlobalSectionEventData struct {
	Slug      string `json:"slug"`
	SectionID string `json:"sectionId,omitempty"`
}

// PostEventData contains data for blog post events.
type PostEventData struct {
	ID     int64  `json:"id"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Author string `json:"author"`
}

// MediaEventData contains data for media events.
type MediaEventData struct {
	ID         int64  `json:"id"`
	UUID       string `json:"uuid"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
	UploadedBy string `json:"uploadedBy"`
}

// UserEventData contains data for user events.
type UserEventData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
