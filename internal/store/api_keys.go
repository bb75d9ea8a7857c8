// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const apiKeyColumns = `id, name, key_hash, key_prefix, user_id, last_used_at, expires_at, is_active, created_at, updated_at`

func scanAPIKey(row interface{ Scan(...any) error }) (model.APIKey, error) {
	var (
		k        model.APIKey
		isActive int
	)
	if err := row.Scan(&k.ID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.UserID,
		&k.LastUsedAt, &k.ExpiresAt, &isActive, &k.CreatedAt, &k.UpdatedAt); err != nil {
		return model.APIKey{}, mapRowErr(err)
	}
	k.IsActive = isActive != 0
	return k, nil
}

// CreateAPIKeyParams carries the writable fields of an API key.
type CreateAPIKeyParams struct {
	Name      string
	KeyHash   string
	KeyPrefix string
	UserID    string
	ExpiresAt sql.NullTime
}

// CreateAPIKey inserts a new API key record.
func (q *Queries) CreateAPIKey(ctx context.Context, p CreateAPIKeyParams) (model.APIKey, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO api_keys (name, key_hash, key_prefix, user_id, expires_at, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		p.Name, p.KeyHash, p.KeyPrefix, p.UserID, p.ExpiresAt, now, now)
	if err != nil {
		return model.APIKey{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.APIKey{}, err
	}
	row := q.db.QueryRowContext(ctx, `SELECT `+apiKeyColumns+` FROM api_keys WHERE id = ?`, id)
	return scanAPIKey(row)
}

// GetAPIKeyByHash loads an API key by its SHA-256 hash.
func (q *Queries) GetAPIKeyByHash(ctx context.Context, hash string) (model.APIKey, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE key_hash = ?`, hash)
	return scanAPIKey(row)
}

// GetAPIKeyByID loads an API key by its row ID.
func (q *Queries) GetAPIKeyByID(ctx context.Context, id int64) (model.APIKey, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE id = ?`, id)
	return scanAPIKey(row)
}

// ListAPIKeysForUser returns a user's keys, newest first.
func (q *Queries) ListAPIKeysForUser(ctx context.Context, userID string) ([]model.APIKey, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// TouchAPIKey records a successful use of the key.
func (q *Queries) TouchAPIKey(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used_at = ? WHERE id = ?`, time.Now().UTC(), id)
	return err
}

// DeactivateAPIKey revokes a key without deleting its audit trail.
func (q *Queries) DeactivateAPIKey(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE api_keys SET is_active = 0, updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
