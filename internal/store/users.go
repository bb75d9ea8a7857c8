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

const userColumns = `id, email, name, password_hash, role, created_at, updated_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt); err != nil {
		return model.User{}, mapRowErr(err)
	}
	return u, nil
}

// CreateUserParams carries the writable fields of a user.
type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

// CreateUser inserts a new user with a fresh UUID.
func (q *Queries) CreateUser(ctx context.Context, p CreateUserParams) (model.User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.Email, p.Name, p.PasswordHash, p.Role, now, now)
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, id)
}

// GetUserByID loads a user without access scoping, for internal use.
func (q *Queries) GetUserByID(ctx context.Context, id string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail loads a user by email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetUser loads a user under the caller's access decision. A self-scoped
// decision sees only the caller's own row.
func (q *Queries) GetUser(ctx context.Context, id string, d policy.Decision) (model.User, error) {
	clause, args, err := scopeClause(d)
	if err != nil {
		return model.User{}, err
	}

	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`+clause, append([]any{id}, args...)...)
	return scanUser(row)
}

// ListUsers returns users visible under the caller's access decision.
func (q *Queries) ListUsers(ctx context.Context, d policy.Decision) ([]model.User, error) {
	clause, args, err := scopeClause(d)
	if err != nil {
		return nil, err
	}

	rows, err := q.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE 1 = 1`+clause+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserParams carries the mutable profile fields of a user.
type UpdateUserParams struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// UpdateUser updates a user's profile under the caller's access decision.
func (q *Queries) UpdateUser(ctx context.Context, p UpdateUserParams, d policy.Decision) (model.User, error) {
	clause, args, err := scopeClause(d)
	if err != nil {
		return model.User{}, err
	}

	res, err := q.db.ExecContext(ctx,
		`UPDATE users SET email = ?, name = ?, role = ?, updated_at = ? WHERE id = ?`+clause,
		append([]any{p.Email, p.Name, p.Role, time.Now().UTC(), p.ID}, args...)...)
	if err != nil {
		return model.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.User{}, ErrNotFound
	}
	return q.GetUserByID(ctx, p.ID)
}

// DeleteUser removes a user.
func (q *Queries) DeleteUser(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchUserLogin records a successful authentication.
func (q *Queries) TouchUserLogin(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ? WHERE id = ?`, time.Now().UTC(), id)
	return err
}

// CountUsers returns the number of stored users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
