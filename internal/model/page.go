// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"
)

// Page types returned by the unified lookup.
const (
	PageTypeDynamic = "dynamic"
	PageTypeGlobal  = "global"
)

// GlobalPage is a singleton content document, one per well-known slug.
// It is edited but never deleted. Besides the generic Sections array it may
// carry fixed named fields, keyed per page kind (see the registry package).
type GlobalPage struct {
	Slug      string
	Title     string
	HeroTitle string
	IsActive  bool
	Sections  []Section
	// Fields holds the fixed named payloads of legacy page kinds,
	// keyed by section key. Payloads are opaque grouped data.
	Fields    map[string]json.RawMessage
	UpdatedAt time.Time
}

// Field returns the payload stored under key, or nil when absent.
func (g *GlobalPage) Field(key string) json.RawMessage {
	if g.Fields == nil {
		return nil
	}
	return g.Fields[key]
}

// FieldHasContent reports whether the payload under key is non-empty.
func (g *GlobalPage) FieldHasContent(key string) bool {
	switch string(g.Field(key)) {
	case "", "null", "{}", "[]", `""`:
		return false
	}
	return true
}

// DynamicPage is one row of the page collection, addressed by a unique slug
// and supporting full CRUD with a published/unpublished lifecycle.
type DynamicPage struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	HeroTitle   string    `json:"heroTitle,omitempty"`
	Category    string    `json:"category,omitempty"`
	Priority    int       `json:"priority"`
	IsPublished bool      `json:"isPublished"`
	Sections    []Section `json:"sections"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GlobalPageInfo is the listing projection of a global page. A page whose
// stored row never loaded reports IsActive false rather than an error.
type GlobalPageInfo struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	IsActive bool   `json:"isActive"`
}
