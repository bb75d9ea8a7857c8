// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/campuscms/campuscms/internal/store"
)

func TestDynamicPageByRootSlug(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.queries.CreateDynamicPage(ctx, store.CreateDynamicPageParams{
		Slug:        "convocation-2026",
		Title:       "Convocation 2026",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("CreateDynamicPage: %v", err)
	}
	if _, err := e.queries.CreateDynamicPage(ctx, store.CreateDynamicPageParams{
		Slug:  "draft-notice",
		Title: "Draft Notice",
	}); err != nil {
		t.Fatalf("CreateDynamicPage: %v", err)
	}

	// Short form and /pages/ form resolve the same published page.
	for _, path := range []string{"/api/v1/convocation-2026", "/api/v1/pages/convocation-2026"} {
		rec, body := e.do(t, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status = %d", path, rec.Code)
		}
		data := body["data"].(map[string]any)
		if data["title"] != "Convocation 2026" {
			t.Errorf("GET %s: title = %v", path, data["title"])
		}
	}

	rec, _ := e.do(t, http.MethodGet, "/api/v1/draft-notice", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unpublished root slug: status = %d, want 404", rec.Code)
	}

	// Static routes are not shadowed by the slug catch-all.
	rec, _ = e.do(t, http.MethodGet, "/api/v1/global-pages", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("static route: status = %d, want 200", rec.Code)
	}
}
