// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Department is an academic department with its own sectioned content.
// Departments reuse the section model but live in their own collection.
type Department struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	HeroTitle string    `json:"heroTitle,omitempty"`
	Priority  int       `json:"priority"`
	IsActive  bool      `json:"isActive"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DepartmentNavEntry is the navigation projection of a department.
type DepartmentNavEntry struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}
