// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campuscms/campuscms/internal/auth"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/registry"
)

// SeedGlobalPages ensures one row exists per registered global page kind.
// Safe to run on every startup: existing content is preserved.
func (q *Queries) SeedGlobalPages(ctx context.Context, reg *registry.Registry) error {
	for _, slug := range reg.Slugs() {
		desc, _ := reg.Lookup(slug)
		if err := q.UpsertGlobalPage(ctx, desc.Slug, desc.Title); err != nil {
			return fmt.Errorf("seeding global page %q: %w", slug, err)
		}
	}
	return nil
}

// SeedSuperAdmin creates an initial superadmin account when the user table
// is empty. The generated password is logged once; it must be rotated on
// first login.
func (q *Queries) SeedSuperAdmin(ctx context.Context, logger *slog.Logger) error {
	count, err := q.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	password, err := model.GenerateWebhookSecret() // random hex, reused as a one-time password
	if err != nil {
		return fmt.Errorf("generating password: %w", err)
	}

	hash, err := auth.HashArgon2(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "admin@campus.local",
		Name:         "Super Admin",
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating superadmin: %w", err)
	}

	logger.Warn("seeded initial superadmin account",
		"email", user.Email,
		"password", password)
	return nil
}
