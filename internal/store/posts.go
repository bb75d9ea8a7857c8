// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/policy"
)

const postColumns = `id, title, slug, body, status, author, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (model.Post, error) {
	var (
		p    model.Post
		body string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &body, &p.Status,
		&p.Author, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.Post{}, mapRowErr(err)
	}
	p.Body = model.RichText(body)
	return p, nil
}

// CreatePostParams carries the writable fields of a post.
type CreatePostParams struct {
	Title  string
	Slug   string
	Body   model.RichText
	Status string
	Author string
}

// CreatePost inserts a new post.
func (q *Queries) CreatePost(ctx context.Context, p CreatePostParams) (model.Post, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO posts (title, slug, body, status, author, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, string(p.Body), p.Status, p.Author, now, now)
	if err != nil {
		return model.Post{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, err
	}
	row := q.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// GetPost loads a post by ID, honoring the caller's access decision.
// A scoped decision that excludes the row yields ErrNotFound, exactly as
// if the row did not exist.
func (q *Queries) GetPost(ctx context.Context, id int64, d policy.Decision) (model.Post, error) {
	clause, args, err := scopeClause(d)
	if err != nil {
		return model.Post{}, err
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?` + clause
	row := q.db.QueryRowContext(ctx, query, append([]any{id}, args...)...)
	return scanPost(row)
}

// ListPosts returns posts visible under the caller's access decision,
// newest first.
func (q *Queries) ListPosts(ctx context.Context, d policy.Decision, limit, offset int) ([]model.Post, error) {
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

	query := `SELECT ` + postColumns + ` FROM posts WHERE 1 = 1` + clause +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := q.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// UpdatePostParams carries a full replacement of a post's writable fields.
type UpdatePostParams struct {
	ID     int64
	Title  string
	Slug   string
	Body   model.RichText
	Status string
}

// UpdatePost replaces a post's content. The access decision is pushed down:
// updating a row the scope excludes affects zero rows and reports ErrNotFound.
func (q *Queries) UpdatePost(ctx context.Context, p UpdatePostParams, d policy.Decision) (model.Post, error) {
	clause, args, err := scopeClause(d)
	if err != nil {
		return model.Post{}, err
	}

	query := `UPDATE posts SET title = ?, slug = ?, body = ?, status = ?, updated_at = ? WHERE id = ?` + clause
	res, err := q.db.ExecContext(ctx, query,
		append([]any{p.Title, p.Slug, string(p.Body), p.Status, time.Now().UTC(), p.ID}, args...)...)
	if err != nil {
		return model.Post{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Post{}, ErrNotFound
	}

	row := q.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, p.ID)
	return scanPost(row)
}

// DeletePost removes a post under the caller's access decision.
func (q *Queries) DeletePost(ctx context.Context, id int64, d policy.Decision) error {
	clause, args, err := scopeClause(d)
	if err != nil {
		return err
	}

	res, err := q.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ?`+clause, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
