// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// rate limiting and request logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/campuscms/campuscms/internal/model"
)

// ContextKey is a typed key for request context values.
type ContextKey string

// ContextKeyPrincipal is the context key for the authenticated principal.
const ContextKeyPrincipal ContextKey = "principal"

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, ContextKeyPrincipal, p)
}

// PrincipalFrom returns the authenticated principal from the request
// context, or nil for an anonymous request.
func PrincipalFrom(r *http.Request) *model.Principal {
	p, _ := r.Context().Value(ContextKeyPrincipal).(*model.Principal)
	return p
}
