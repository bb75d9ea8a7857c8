// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/policy"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/util"
	"github.com/campuscms/campuscms/internal/webhook"
)

// PostRequest is the request body for creating or updating a blog post.
type PostRequest struct {
	Title  string         `json:"title"`
	Slug   string         `json:"slug"`
	Body   model.RichText `json:"body"`
	Status string         `json:"status"`
}

func (req *PostRequest) validate() string {
	if req.Title == "" {
		return "Title is required"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(req.Slug) {
		return "Invalid slug"
	}
	if req.Status == "" {
		req.Status = model.PostStatusDraft
	}
	if req.Status != model.PostStatusDraft && req.Status != model.PostStatusPublished {
		return "Invalid status"
	}
	return ""
}

// CreatePost handles POST /posts. Bloggers may create; the post is owned
// by its author.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.BlogPostAccess(policy.OpCreate, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		WriteBadRequest(w, msg)
		return
	}

	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Title:  req.Title,
		Slug:   req.Slug,
		Body:   model.SanitizeRichText(req.Body),
		Status: req.Status,
		Author: p.ID,
	})
	if err != nil {
		h.writeStoreError(w, err, "Post not found")
		return
	}

	h.hooks.DispatchEvent(r.Context(), model.EventPostCreated, webhook.PostEventData{
		ID: post.ID, Slug: post.Slug, Title: post.Title,
		Status: post.Status, Author: post.Author,
	})
	WriteCreated(w, post)
}

// GetPost handles GET /posts/{id}. The caller's access decision scopes
// what is visible: anonymous readers see published posts, bloggers see
// their own drafts too.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid post id")
		return
	}

	p := middleware.PrincipalFrom(r)
	post, err := h.queries.GetPost(r.Context(), id, policy.BlogPostAccess(policy.OpRead, p))
	if err != nil {
		h.writeStoreError(w, err, "Post not found")
		return
	}
	WriteSuccess(w, post)
}

// ListPosts handles GET /posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			WriteBadRequest(w, "Invalid limit parameter")
			return
		}
		limit = n
	}
	offset := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteBadRequest(w, "Invalid page parameter")
			return
		}
		offset = (n - 1) * limit
	}

	p := middleware.PrincipalFrom(r)
	posts, err := h.queries.ListPosts(r.Context(), policy.BlogPostAccess(policy.OpRead, p), limit, offset)
	if err != nil {
		h.writeStoreError(w, err, "Posts not found")
		return
	}
	WriteSuccess(w, posts)
}

// UpdatePost handles PUT /posts/{id}. A blogger's scope filter is pushed
// into the store: updating someone else's post matches zero rows and
// reports not found.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid post id")
		return
	}

	p := middleware.PrincipalFrom(r)
	decision := policy.BlogPostAccess(policy.OpUpdate, p)
	if decision.IsDeny() {
		WriteForbidden(w, "Forbidden")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		WriteBadRequest(w, msg)
		return
	}

	post, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		ID:     id,
		Title:  req.Title,
		Slug:   req.Slug,
		Body:   model.SanitizeRichText(req.Body),
		Status: req.Status,
	}, decision)
	if err != nil {
		h.writeStoreError(w, err, "Post not found")
		return
	}

	h.hooks.DispatchEvent(r.Context(), model.EventPostUpdated, webhook.PostEventData{
		ID: post.ID, Slug: post.Slug, Title: post.Title,
		Status: post.Status, Author: post.Author,
	})
	WriteSuccess(w, post)
}

// DeletePost handles DELETE /posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid post id")
		return
	}

	p := middleware.PrincipalFrom(r)
	decision := policy.BlogPostAccess(policy.OpDelete, p)
	if decision.IsDeny() {
		WriteForbidden(w, "Forbidden")
		return
	}

	if err := h.queries.DeletePost(r.Context(), id, decision); err != nil {
		h.writeStoreError(w, err, "Post not found")
		return
	}

	h.hooks.DispatchEvent(r.Context(), model.EventPostDeleted, webhook.PostEventData{ID: id})
	WriteSuccess(w, map[string]any{"deleted": true})
}
