// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const departmentColumns = `id, slug, name, hero_title, priority, is_active, sections, created_at, updated_at`

func scanDepartment(row interface{ Scan(...any) error }) (model.Department, error) {
	var (
		d           model.Department
		isActive    int
		sectionsRaw string
	)
	if err := row.Scan(&d.ID, &d.Slug, &d.Name, &d.HeroTitle, &d.Priority,
		&isActive, &sectionsRaw, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return model.Department{}, mapRowErr(err)
	}

	d.IsActive = isActive != 0

	sections, err := unmarshalSections(sectionsRaw)
	if err != nil {
		return model.Department{}, fmt.Errorf("department %q: %w", d.Slug, err)
	}
	d.Sections = sections
	return d, nil
}

// GetActiveDepartmentBySlug loads an active department. Inactive departments
// are indistinguishable from absent ones.
func (q *Queries) GetActiveDepartmentBySlug(ctx context.Context, slug string) (model.Department, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE slug = ? AND is_active = 1`, slug)
	return scanDepartment(row)
}

// ListActiveDepartments returns active departments ordered by priority then name.
func (q *Queries) ListActiveDepartments(ctx context.Context) ([]model.DepartmentNavEntry, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT slug, name, priority FROM departments
		WHERE is_active = 1 ORDER BY priority ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.DepartmentNavEntry
	for rows.Next() {
		var e model.DepartmentNavEntry
		if err := rows.Scan(&e.Slug, &e.Name, &e.Priority); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CreateDepartmentParams carries the writable fields of a department.
type CreateDepartmentParams struct {
	Slug      string
	Name      string
	HeroTitle string
	Priority  int
	IsActive  bool
	Sections  []model.Section
}

// CreateDepartment inserts a new department.
func (q *Queries) CreateDepartment(ctx context.Context, p CreateDepartmentParams) (model.Department, error) {
	raw, err := marshalSections(p.Sections)
	if err != nil {
		return model.Department{}, err
	}

	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO departments (slug, name, hero_title, priority, is_active, sections, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Name, p.HeroTitle, p.Priority, boolToInt(p.IsActive), raw, now, now)
	if err != nil {
		return model.Department{}, fmt.Errorf("inserting department: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Department{}, err
	}
	row := q.db.QueryRowContext(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE id = ?`, id)
	return scanDepartment(row)
}

// UpdateDepartmentSections replaces a department's section list.
func (q *Queries) UpdateDepartmentSections(ctx context.Context, slug string, sections []model.Section) error {
	raw, err := marshalSections(sections)
	if err != nil {
		return err
	}

	res, err := q.db.ExecContext(ctx, `
		UPDATE departments SET sections = ?, updated_at = ? WHERE slug = ?`,
		raw, time.Now().UTC(), slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
