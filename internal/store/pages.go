// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

// CreateDynamicPageParams carries the writable fields of a dynamic page.
type CreateDynamicPageParams struct {
	Slug        string
	Title       string
	HeroTitle   string
	Category    string
	Priority    int
	IsPublished bool
	Sections    []model.Section
}

// CreateDynamicPage inserts a new dynamic page.
func (q *Queries) CreateDynamicPage(ctx context.Context, p CreateDynamicPageParams) (model.DynamicPage, error) {
	raw, err := marshalSections(p.Sections)
	if err != nil {
		return model.DynamicPage{}, err
	}

	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO dynamic_pages (slug, title, hero_title, category, priority, is_published, sections, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.HeroTitle, p.Category, p.Priority, boolToInt(p.IsPublished), raw, now, now)
	if err != nil {
		return model.DynamicPage{}, fmt.Errorf("inserting dynamic page: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.DynamicPage{}, err
	}
	return q.GetDynamicPageByID(ctx, id)
}

const dynamicPageColumns = `id, slug, title, hero_title, category, priority, is_published, sections, created_at, updated_at`

// scanDynamicPage scans one dynamic page row.
func scanDynamicPage(row interface{ Scan(...any) error }) (model.DynamicPage, error) {
	var (
		p           model.DynamicPage
		isPublished int
		sectionsRaw string
	)
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.HeroTitle, &p.Category,
		&p.Priority, &isPublished, &sectionsRaw, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.DynamicPage{}, mapRowErr(err)
	}

	p.IsPublished = isPublished != 0

	sections, err := unmarshalSections(sectionsRaw)
	if err != nil {
		return model.DynamicPage{}, fmt.Errorf("dynamic page %q: %w", p.Slug, err)
	}
	p.Sections = sections
	return p, nil
}

// GetDynamicPageByID loads a dynamic page regardless of publication state.
func (q *Queries) GetDynamicPageByID(ctx context.Context, id int64) (model.DynamicPage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+dynamicPageColumns+` FROM dynamic_pages WHERE id = ?`, id)
	return scanDynamicPage(row)
}

// GetPublishedDynamicPageBySlug loads a published dynamic page. Unpublished
// pages are indistinguishable from absent ones.
func (q *Queries) GetPublishedDynamicPageBySlug(ctx context.Context, slug string) (model.DynamicPage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+dynamicPageColumns+` FROM dynamic_pages WHERE slug = ? AND is_published = 1`, slug)
	return scanDynamicPage(row)
}

// GetDynamicPageBySlug loads a dynamic page for editing, published or not.
func (q *Queries) GetDynamicPageBySlug(ctx context.Context, slug string) (model.DynamicPage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+dynamicPageColumns+` FROM dynamic_pages WHERE slug = ?`, slug)
	return scanDynamicPage(row)
}

// ListPublishedDynamicPagesParams filters the published page listing.
type ListPublishedDynamicPagesParams struct {
	Category string
	Limit    int
	Offset   int
}

// ListPublishedDynamicPages returns published pages ordered by priority
// descending, then slug.
func (q *Queries) ListPublishedDynamicPages(ctx context.Context, p ListPublishedDynamicPagesParams) ([]model.DynamicPage, error) {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	query := `SELECT ` + dynamicPageColumns + ` FROM dynamic_pages WHERE is_published = 1`
	args := []any{}
	if p.Category != "" {
		query += ` AND category = ?`
		args = append(args, p.Category)
	}
	query += ` ORDER BY priority DESC, slug ASC LIMIT ? OFFSET ?`
	args = append(args, p.Limit, p.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []model.DynamicPage
	for rows.Next() {
		page, err := scanDynamicPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// CountPublishedDynamicPages counts published pages, optionally per category.
func (q *Queries) CountPublishedDynamicPages(ctx context.Context, category string) (int64, error) {
	var (
		count int64
		err   error
	)
	if category == "" {
		err = q.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM dynamic_pages WHERE is_published = 1`).Scan(&count)
	} else {
		err = q.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM dynamic_pages WHERE is_published = 1 AND category = ?`, category).Scan(&count)
	}
	return count, err
}

// UpdateDynamicPageParams carries a full replacement of a page's writable fields.
type UpdateDynamicPageParams struct {
	ID          int64
	Slug        string
	Title       string
	HeroTitle   string
	Category    string
	Priority    int
	IsPublished bool
	Sections    []model.Section
}

// UpdateDynamicPage replaces a dynamic page's content.
func (q *Queries) UpdateDynamicPage(ctx context.Context, p UpdateDynamicPageParams) (model.DynamicPage, error) {
	raw, err := marshalSections(p.Sections)
	if err != nil {
		return model.DynamicPage{}, err
	}

	res, err := q.db.ExecContext(ctx, `
		UPDATE dynamic_pages
		SET slug = ?, title = ?, hero_title = ?, category = ?, priority = ?, is_published = ?, sections = ?, updated_at = ?
		WHERE id = ?`,
		p.Slug, p.Title, p.HeroTitle, p.Category, p.Priority, boolToInt(p.IsPublished), raw, time.Now().UTC(), p.ID)
	if err != nil {
		return model.DynamicPage{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.DynamicPage{}, ErrNotFound
	}
	return q.GetDynamicPageByID(ctx, p.ID)
}

// DeleteDynamicPage removes a dynamic page.
func (q *Queries) DeleteDynamicPage(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM dynamic_pages WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DynamicPageSlugExists reports whether a slug is taken, excluding one ID
// (pass 0 when creating).
func (q *Queries) DynamicPageSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM dynamic_pages WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&count)
	return count > 0, err
}
