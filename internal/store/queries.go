// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/policy"
)

// ErrNotFound is returned when a row does not exist or an access scope
// excludes it. Callers cannot distinguish the two cases.
var ErrNotFound = errors.New("not found")

// ErrDenied is returned when a flat policy denial blocks an operation.
var ErrDenied = errors.New("access denied")

// Queries is the hand-written query layer over the content store.
type Queries struct {
	db *sql.DB
}

// New creates a query layer bound to db.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// DB exposes the underlying handle for transactions and health checks.
func (q *Queries) DB() *sql.DB {
	return q.db
}

// scopeFields are the ownership columns a decision may reference.
// Anything else is rejected to keep scope pushdown injection-safe.
var scopeFields = map[string]bool{
	policy.FieldAuthor:     true,
	policy.FieldUploadedBy: true,
	policy.FieldUserID:     true,
}

// scopeClause renders a policy decision into an extra WHERE conjunct.
// A flat allow contributes nothing; a scoped allow contributes a single
// equality; a deny short-circuits with ErrDenied.
func scopeClause(d policy.Decision) (clause string, args []any, err error) {
	if d.IsDeny() {
		return "", nil, ErrDenied
	}
	field, value, ok := d.Scope()
	if !ok {
		return "", nil, nil
	}
	if !scopeFields[field] {
		return "", nil, fmt.Errorf("unsupported scope field %q", field)
	}
	return " AND " + field + " = ?", []any{value}, nil
}

// marshalSections encodes a section list for storage, normalizing nil to [].
func marshalSections(sections []model.Section) (string, error) {
	if sections == nil {
		sections = []model.Section{}
	}
	data, err := json.Marshal(sections)
	if err != nil {
		return "", fmt.Errorf("encoding sections: %w", err)
	}
	return string(data), nil
}

// unmarshalSections decodes a stored section list.
func unmarshalSections(raw string) ([]model.Section, error) {
	if raw == "" {
		return nil, nil
	}
	var sections []model.Section
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, fmt.Errorf("decoding sections: %w", err)
	}
	return sections, nil
}

// mapRowErr translates sql.ErrNoRows into the package sentinel.
func mapRowErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
