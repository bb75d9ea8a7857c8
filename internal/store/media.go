// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/policy"
)

const mediaColumns = `id, uuid, filename, path, mime_type, size, uploaded_by, created_at, updated_at`

func scanMedia(row interface{ Scan(...any) error }) (model.Media, error) {
	var m model.Media
	if err := row.Scan(&m.ID, &m.UUID, &m.Filename, &m.Path, &m.MimeType,
		&m.Size, &m.UploadedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return model.Media{}, mapRowErr(err)
	}
	return m, nil
}

// CreateMediaParams carries the writable fields of a media record.
type CreateMediaParams struct {
	Filename   string
	Path       string
	MimeType   string
	Size       int64
	UploadedBy string
}

// CreateMedia inserts a new media record with a fresh UUID.
func (q *Queries) CreateMedia(ctx context.Context, p CreateMediaParams) (model.Media, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO media (uuid, filename, path, mime_type, size, uploaded_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), p.Filename, p.Path, p.MimeType, p.Size, p.UploadedBy, now, now)
	if err != nil {
		return model.Media{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Media{}, err
	}
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	return scanMedia(row)
}

// GetMedia loads one media record under the caller's access decision.
func (q *Queries) GetMedia(ctx context.Context, id int64, d policy.Decision) (model.Media, error) {
	clause, args, err := scopeClause(d)
	if err != nil {
		return model.Media{}, err
	}

	row := q.db.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE id = ?`+clause, append([]any{id}, args...)...)
	return scanMedia(row)
}

// ListMedia returns media records visible under the caller's access
// decision, newest first.
func (q *Queries) ListMedia(ctx context.Context, d policy.Decision, limit, offset int) ([]model.Media, error) {
	clause, args, err := scopeClause(d)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + mediaColumns + ` FROM media WHERE 1 = 1` + clause +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := q.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// UpdateMediaFilename renames a media record under the caller's access decision.
func (q *Queries) UpdateMediaFilename(ctx context.Context, id int64, filename string, d policy.Decision) error {
	clause, args, err := scopeClause(d)
	if err != nil {
		return err
	}

	res, err := q.db.ExecContext(ctx,
		`UPDATE media SET filename = ?, updated_at = ? WHERE id = ?`+clause,
		append([]any{filename, time.Now().UTC(), id}, args...)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMedia removes a media record under the caller's access decision.
func (q *Queries) DeleteMedia(ctx context.Context, id int64, d policy.Decision) error {
	clause, args, err := scopeClause(d)
	if err != nil {
		return err
	}

	res, err := q.db.ExecContext(ctx,
		`DELETE FROM media WHERE id = ?`+clause, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
