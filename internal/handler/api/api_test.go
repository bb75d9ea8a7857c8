// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/content"
	"github.com/campuscms/campuscms/internal/handler/api"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/policy"
	"github.com/campuscms/campuscms/internal/registry"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/testutil"
	"github.com/campuscms/campuscms/internal/webhook"
)

type testEnv struct {
	queries *store.Queries
	router  chi.Router
}

// newTestEnv builds a handler over a fresh database and registry. The
// webhook dispatcher is constructed but not started, so mutations emit
// events into the void.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	q := testutil.TestQueries(t)
	logger := testutil.TestLogger()

	reg := registry.New()
	reg.MustRegister(registry.Descriptor{
		Slug:  "about",
		Title: "About",
		Sections: []registry.FieldSection{
			{Key: "profile", Title: "Profile", Type: model.SectionRichText, Order: 1},
			{Key: "vision-mission", Title: "Vision & Mission", Type: model.SectionRichText, Order: 2},
		},
	})
	reg.MustRegister(registry.Descriptor{Slug: "research", Title: "Research"})

	if err := q.SeedGlobalPages(context.Background(), reg); err != nil {
		t.Fatalf("SeedGlobalPages: %v", err)
	}

	resolver := content.NewResolver(q, reg)
	lister := content.NewLister(q, reg, nil, 0, logger)
	hooks := webhook.NewDispatcher(q, logger, webhook.DefaultConfig())

	h := api.NewHandler(q, reg, resolver, lister, hooks, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(h.PublicRoutes)
		r.Route("/editor", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Group(h.EditorRoutes)
		})
	})

	return &testEnv{queries: q, router: r}
}

// do performs a request, optionally as a principal, and decodes the body.
func (e *testEnv) do(t *testing.T, method, path string, body any, p *model.Principal) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if p != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func policyAllow() policy.Decision {
	return policy.Allow()
}

func adminPrincipal() *model.Principal {
	return &model.Principal{ID: "admin-1", Email: "admin@campus.local", Role: model.RoleAdmin}
}

func bloggerPrincipal(id string) *model.Principal {
	return &model.Principal{ID: id, Email: id + "@campus.local", Role: model.RoleBlogger}
}

func (e *testEnv) seedAboutContent(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	sections := []model.Section{{
		Title:    "Vision",
		Type:     model.SectionRichText,
		Order:    0,
		IsActive: true,
		Content:  model.RichTextContent{Body: model.RichText(`"Our vision"`)},
	}}
	if err := e.queries.UpdateGlobalPageSections(ctx, "about", sections); err != nil {
		t.Fatalf("UpdateGlobalPageSections: %v", err)
	}
	payload := json.RawMessage(`{"content":"The campus profile"}`)
	if err := e.queries.UpdateGlobalPageField(ctx, "about", "profile", payload); err != nil {
		t.Fatalf("UpdateGlobalPageField: %v", err)
	}
}

func TestPageSectionsListing(t *testing.T) {
	e := newTestEnv(t)
	e.seedAboutContent(t)

	rec, body := e.do(t, http.MethodGet, "/api/v1/about/sections", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}

	data := body["data"].(map[string]any)
	sections := data["sections"].([]any)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2: %v", len(sections), sections)
	}
	first := sections[0].(map[string]any)
	second := sections[1].(map[string]any)
	if first["id"] != "section-0" || first["title"] != "Vision" {
		t.Errorf("first section = %v", first)
	}
	if second["id"] != "profile" || second["title"] != "Profile" {
		t.Errorf("second section = %v", second)
	}
}

func TestPageSectionFixedField(t *testing.T) {
	e := newTestEnv(t)
	e.seedAboutContent(t)

	rec, body := e.do(t, http.MethodGet, "/api/v1/about/sections/profile", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	data := body["data"].(map[string]any)
	if data["title"] != "Profile" || data["sectionId"] != "profile" || data["globalSlug"] != "about" {
		t.Errorf("data = %v", data)
	}
	contentObj := data["content"].(map[string]any)
	if contentObj["content"] != "The campus profile" {
		t.Errorf("content = %v", contentObj)
	}
}

func TestPageSectionsNotFound(t *testing.T) {
	e := newTestEnv(t)

	rec, body := e.do(t, http.MethodGet, "/api/v1/nonexistent-page/sections", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
	if body["error"] != "Global data not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestUnifiedPageFallsThroughToGlobal(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	// Unpublished dynamic page must not shadow the global page.
	_, err := e.queries.CreateDynamicPage(ctx, store.CreateDynamicPageParams{
		Slug: "research", Title: "Research (draft)", IsPublished: false,
	})
	if err != nil {
		t.Fatalf("CreateDynamicPage: %v", err)
	}

	rec, body := e.do(t, http.MethodGet, "/api/v1/unified-page/research", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data := body["data"].(map[string]any)
	if data["pageType"] != "global" {
		t.Errorf("pageType = %v, want global", data["pageType"])
	}
}

func TestUnifiedPageMissingSlug(t *testing.T) {
	e := newTestEnv(t)

	rec, body := e.do(t, http.MethodGet, "/api/v1/unified-page?slug=", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
}

func TestGlobalPagesListing(t *testing.T) {
	e := newTestEnv(t)

	rec, body := e.do(t, http.MethodGet, "/api/v1/global-pages", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("got %d pages, want 2", len(data))
	}
}

func TestCreateDynamicPageRequiresEditor(t *testing.T) {
	e := newTestEnv(t)

	page := map[string]any{"title": "New Page", "isPublished": true}

	// Anonymous requests never reach the handler.
	rec, _ := e.do(t, http.MethodPost, "/api/v1/editor/dynamic-pages", page, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("anonymous status = %d, want 403", rec.Code)
	}

	// Bloggers are authenticated but not editors for pages.
	rec, _ = e.do(t, http.MethodPost, "/api/v1/editor/dynamic-pages", page, bloggerPrincipal("b1"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("blogger status = %d, want 403", rec.Code)
	}

	rec, body := e.do(t, http.MethodPost, "/api/v1/editor/dynamic-pages", page, adminPrincipal())
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data := body["data"].(map[string]any)
	if data["slug"] != "new-page" {
		t.Errorf("slug = %v, want derived slug", data["slug"])
	}
}

func TestBloggerCannotUpdateOthersPost(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	post, err := e.queries.CreatePost(ctx, store.CreatePostParams{
		Title: "B2's Post", Slug: "b2-post", Body: model.RichText(`"body"`),
		Status: model.PostStatusPublished, Author: "b2",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	update := map[string]any{"title": "Hijacked", "slug": "b2-post", "status": "published"}
	rec, _ := e.do(t, http.MethodPut, "/api/v1/editor/posts/1", update, bloggerPrincipal("b1"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 (scope filter matched zero rows)", rec.Code)
	}

	// The owner can update it.
	rec, _ = e.do(t, http.MethodPut, "/api/v1/editor/posts/1", update, bloggerPrincipal("b2"))
	if rec.Code != http.StatusOK {
		t.Errorf("owner status = %d, body = %s", rec.Code, rec.Body.String())
	}

	got, err := e.queries.GetPost(ctx, post.ID, policyAllow())
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "Hijacked" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestAnonymousSeesOnlyPublishedPosts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	seed := []store.CreatePostParams{
		{Title: "Live", Slug: "live", Body: model.RichText(`"x"`), Status: model.PostStatusPublished, Author: "b1"},
		{Title: "Draft", Slug: "draft", Body: model.RichText(`"x"`), Status: model.PostStatusDraft, Author: "b1"},
	}
	for _, p := range seed {
		if _, err := e.queries.CreatePost(ctx, p); err != nil {
			t.Fatalf("CreatePost: %v", err)
		}
	}

	rec, body := e.do(t, http.MethodGet, "/api/v1/posts", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	posts := body["data"].([]any)
	if len(posts) != 1 {
		t.Fatalf("anonymous sees %d posts, want 1", len(posts))
	}
	if posts[0].(map[string]any)["title"] != "Live" {
		t.Errorf("post = %v", posts[0])
	}
}

func TestCreateWebhookAdminOnly(t *testing.T) {
	e := newTestEnv(t)

	hook := map[string]any{
		"name":   "ci hook",
		"url":    "https://example.com/hook",
		"events": []string{model.EventPageCreated},
	}

	rec, _ := e.do(t, http.MethodPost, "/api/v1/editor/webhooks", hook, bloggerPrincipal("b1"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("blogger status = %d, want 403", rec.Code)
	}

	rec, body := e.do(t, http.MethodPost, "/api/v1/editor/webhooks", hook, adminPrincipal())
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data := body["data"].(map[string]any)
	if data["secret"] == "" || data["secret"] == nil {
		t.Error("secret missing from creation response")
	}
}

func TestUpdateGlobalFieldUnknownKey(t *testing.T) {
	e := newTestEnv(t)

	rec, _ := e.do(t, http.MethodPut, "/api/v1/editor/globals/about/fields/history",
		map[string]any{"content": "x"}, adminPrincipal())
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for undeclared field key", rec.Code)
	}
}
