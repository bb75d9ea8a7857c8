// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

// GetGlobalPage loads a global page row by slug.
func (q *Queries) GetGlobalPage(ctx context.Context, slug string) (model.GlobalPage, error) {
	var (
		page        model.GlobalPage
		isActive    int
		sectionsRaw string
		fieldsRaw   string
	)

	row := q.db.QueryRowContext(ctx, `
		SELECT slug, title, hero_title, is_active, sections, fields, updated_at
		FROM global_pages WHERE slug = ?`, slug)
	if err := row.Scan(&page.Slug, &page.Title, &page.HeroTitle, &isActive,
		&sectionsRaw, &fieldsRaw, &page.UpdatedAt); err != nil {
		return model.GlobalPage{}, mapRowErr(err)
	}

	page.IsActive = isActive != 0

	sections, err := unmarshalSections(sectionsRaw)
	if err != nil {
		return model.GlobalPage{}, fmt.Errorf("global page %q: %w", slug, err)
	}
	page.Sections = sections

	if fieldsRaw != "" && fieldsRaw != "{}" {
		if err := json.Unmarshal([]byte(fieldsRaw), &page.Fields); err != nil {
			return model.GlobalPage{}, fmt.Errorf("global page %q fields: %w", slug, err)
		}
	}

	return page, nil
}

// UpsertGlobalPage ensures a global page row exists with the given title.
// Existing rows keep their content; only the title is refreshed.
func (q *Queries) UpsertGlobalPage(ctx context.Context, slug, title string) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO global_pages (slug, title, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET title = excluded.title`,
		slug, title, time.Now().UTC())
	return err
}

// UpdateGlobalPageSections replaces the generic sections array of a global page.
func (q *Queries) UpdateGlobalPageSections(ctx context.Context, slug string, sections []model.Section) error {
	raw, err := marshalSections(sections)
	if err != nil {
		return err
	}

	res, err := q.db.ExecContext(ctx, `
		UPDATE global_pages SET sections = ?, updated_at = ? WHERE slug = ?`,
		raw, time.Now().UTC(), slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateGlobalPageField stores the payload of one fixed named section.
func (q *Queries) UpdateGlobalPageField(ctx context.Context, slug, key string, payload json.RawMessage) error {
	page, err := q.GetGlobalPage(ctx, slug)
	if err != nil {
		return err
	}

	if page.Fields == nil {
		page.Fields = make(map[string]json.RawMessage)
	}
	page.Fields[key] = payload

	raw, err := json.Marshal(page.Fields)
	if err != nil {
		return fmt.Errorf("encoding fields: %w", err)
	}

	_, err = q.db.ExecContext(ctx, `
		UPDATE global_pages SET fields = ?, updated_at = ? WHERE slug = ?`,
		string(raw), time.Now().UTC(), slug)
	return err
}

// SetGlobalPageActive toggles a global page's visibility.
func (q *Queries) SetGlobalPageActive(ctx context.Context, slug string, active bool) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE global_pages SET is_active = ?, updated_at = ? WHERE slug = ?`,
		boolToInt(active), time.Now().UTC(), slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
