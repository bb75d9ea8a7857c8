// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/testutil"
)

// seedKeyedUser creates a user with an API key and returns the raw key.
func seedKeyedUser(t *testing.T, q *store.Queries, role string) (model.User, string) {
	t.Helper()
	ctx := context.Background()

	user, err := q.CreateUser(ctx, store.CreateUserParams{
		Email: role + "@campus.local",
		Name:  "Test " + role,
		Role:  role,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	_, err = q.CreateAPIKey(ctx, store.CreateAPIKeyParams{
		Name:      "test key",
		KeyHash:   model.HashAPIKey(rawKey),
		KeyPrefix: prefix,
		UserID:    user.ID,
	})
	if err != nil {
		t.Fatalf("CreateAPIKey: %v", err)
	}
	return user, rawKey
}

// principalEcho records the principal the middleware resolved.
func principalEcho(got **model.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = middleware.PrincipalFrom(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateResolvesPrincipal(t *testing.T) {
	q := testutil.TestQueries(t)
	user, rawKey := seedKeyedUser(t, q, model.RoleAdmin)

	var got *model.Principal
	h := middleware.Authenticate(q, testutil.TestLogger())(principalEcho(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+rawKey)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got == nil || got.ID != user.ID || got.Role != model.RoleAdmin {
		t.Errorf("principal = %+v", got)
	}
}

func TestAuthenticateAnonymousWithoutHeader(t *testing.T) {
	q := testutil.TestQueries(t)

	var got *model.Principal
	h := middleware.Authenticate(q, testutil.TestLogger())(principalEcho(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got != nil {
		t.Errorf("expected anonymous principal, got %+v", got)
	}
}

func TestAuthenticateRejectsInvalidKey(t *testing.T) {
	q := testutil.TestQueries(t)

	var got *model.Principal
	h := middleware.Authenticate(q, testutil.TestLogger())(principalEcho(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-key")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestAuthenticateRejectsDeactivatedKey(t *testing.T) {
	q := testutil.TestQueries(t)
	_, rawKey := seedKeyedUser(t, q, model.RoleBlogger)

	if err := q.DeactivateAPIKey(context.Background(), 1); err != nil {
		t.Fatalf("DeactivateAPIKey: %v", err)
	}

	var got *model.Principal
	h := middleware.Authenticate(q, testutil.TestLogger())(principalEcho(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+rawKey)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	h := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("anonymous status = %d, want 403", rec.Code)
	}

	p := &model.Principal{ID: "u1", Role: model.RoleAdmin}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithPrincipal(req.Context(), p))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", rec.Code)
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 1)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}

	// A different client has its own bucket.
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", rec.Code)
	}
}
