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

// DynamicPageRequest is the request body for creating or updating a
// dynamic page.
type DynamicPageRequest struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	HeroTitle   string          `json:"heroTitle"`
	Category    string          `json:"category"`
	Priority    int             `json:"priority"`
	IsPublished bool            `json:"isPublished"`
	Sections    []model.Section `json:"sections"`
}

func (req *DynamicPageRequest) validate() string {
	if req.Title == "" {
		return "Title is required"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(req.Slug) {
		return "Invalid slug"
	}
	for i := range req.Sections {
		if err := req.Sections[i].Validate(); err != nil {
			return err.Error()
		}
	}
	return ""
}

// CreateDynamicPage handles POST /dynamic-pages.
func (h *Handler) CreateDynamicPage(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.UniversalAccessPublished(policy.OpCreate, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	var req DynamicPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		WriteBadRequest(w, msg)
		return
	}

	exists, err := h.queries.DynamicPageSlugExists(r.Context(), req.Slug, 0)
	if err != nil {
		h.writeStoreError(w, err, "Page not found")
		return
	}
	if exists {
		WriteBadRequest(w, "Slug already in use")
		return
	}

	page, err := h.queries.CreateDynamicPage(r.Context(), store.CreateDynamicPageParams{
		Slug:        req.Slug,
		Title:       req.Title,
		HeroTitle:   req.HeroTitle,
		Category:    req.Category,
		Priority:    req.Priority,
		IsPublished: req.IsPublished,
		Sections:    req.Sections,
	})
	if err != nil {
		h.writeStoreError(w, err, "Page not found")
		return
	}

	h.lister.InvalidateDynamicPages(r.Context())
	h.hooks.DispatchEvent(r.Context(), model.EventPageCreated, webhook.PageEventData{
		ID: page.ID, Slug: page.Slug, Title: page.Title,
		Category: page.Category, IsPublished: page.IsPublished,
	})
	WriteCreated(w, page)
}

// UpdateDynamicPage handles PUT /dynamic-pages/{id}.
func (h *Handler) UpdateDynamicPage(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.UniversalAccessPublished(policy.OpUpdate, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid page id")
		return
	}

	var req DynamicPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		WriteBadRequest(w, msg)
		return
	}

	exists, err := h.queries.DynamicPageSlugExists(r.Context(), req.Slug, id)
	if err != nil {
		h.writeStoreError(w, err, "Page not found")
		return
	}
	if exists {
		WriteBadRequest(w, "Slug already in use")
		return
	}

	page, err := h.queries.UpdateDynamicPage(r.Context(), store.UpdateDynamicPageParams{
		ID:          id,
		Slug:        req.Slug,
		Title:       req.Title,
		HeroTitle:   req.HeroTitle,
		Category:    req.Category,
		Priority:    req.Priority,
		IsPublished: req.IsPublished,
		Sections:    req.Sections,
	})
	if err != nil {
		h.writeStoreError(w, err, "Page not found")
		return
	}

	h.lister.InvalidateDynamicPages(r.Context())
	h.hooks.DispatchEvent(r.Context(), model.EventPageUpdated, webhook.PageEventData{
		ID: page.ID, Slug: page.Slug, Title: page.Title,
		Category: page.Category, IsPublished: page.IsPublished,
	})
	WriteSuccess(w, page)
}

// DeleteDynamicPage handles DELETE /dynamic-pages/{id}.
func (h *Handler) DeleteDynamicPage(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.UniversalAccessPublished(policy.OpDelete, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid page id")
		return
	}

	page, err := h.queries.GetDynamicPageByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err, "Page not found")
		return
	}
	if err := h.queries.DeleteDynamicPage(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "Page not found")
		return
	}

	h.lister.InvalidateDynamicPages(r.Context())
	h.hooks.DispatchEvent(r.Context(), model.EventPageDeleted, webhook.PageEventData{
		ID: page.ID, Slug: page.Slug, Title: page.Title,
		Category: page.Category, IsPublished: page.IsPublished,
	})
	WriteSuccess(w, map[string]any{"deleted": true})
}

// UpdateGlobalSectionsRequest is the request body for replacing a global
// page's generic sections array.
type UpdateGlobalSectionsRequest struct {
	Sections []model.Section `json:"sections"`
}

// UpdateGlobalSections handles PUT /globals/{slug}/sections.
func (h *Handler) UpdateGlobalSections(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.AdminAndBloggerWithSuperAdminAccess(policy.OpUpdate, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	slug := chi.URLParam(r, "slug")
	if _, ok := h.reg.Lookup(slug); !ok {
		WriteNotFound(w, "Global data not found")
		return
	}

	var req UpdateGlobalSectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	for i := range req.Sections {
		if err := req.Sections[i].Validate(); err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
	}

	if err := h.queries.UpdateGlobalPageSections(r.Context(), slug, req.Sections); err != nil {
		h.writeStoreError(w, err, "Global data not found")
		return
	}

	h.lister.InvalidateGlobalPages(r.Context())
	h.hooks.DispatchEvent(r.Context(), model.EventGlobalSectionUpdated, webhook.GlobalSectionEventData{
		Slug: slug,
	})
	WriteSuccess(w, map[string]any{"slug": slug, "sections": len(req.Sections)})
}

// UpdateGlobalField handles PUT /globals/{slug}/fields/{key}. The body is
// the field's grouped payload, stored opaquely.
func (h *Handler) UpdateGlobalField(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.AdminAndBloggerWithSuperAdminAccess(policy.OpUpdate, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	slug := chi.URLParam(r, "slug")
	key := chi.URLParam(r, "key")

	desc, ok := h.reg.Lookup(slug)
	if !ok {
		WriteNotFound(w, "Global data not found")
		return
	}
	if _, ok := desc.FieldSection(key); !ok {
		WriteNotFound(w, "Global data not found")
		return
	}

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.queries.UpdateGlobalPageField(r.Context(), slug, key, payload); err != nil {
		h.writeStoreError(w, err, "Global data not found")
		return
	}

	h.lister.InvalidateGlobalPages(r.Context())
	h.hooks.DispatchEvent(r.Context(), model.EventGlobalSectionUpdated, webhook.GlobalSectionEventData{
		Slug: slug, SectionID: key,
	})
	WriteSuccess(w, map[string]any{"slug": slug, "sectionId": key})
}
