// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/content"
	"github.com/campuscms/campuscms/internal/util"
)

// GlobalPages handles GET /global-pages.
func (h *Handler) GlobalPages(w http.ResponseWriter, r *http.Request) {
	infos, err := h.lister.GlobalPages(r.Context())
	if err != nil {
		h.writeStoreError(w, err, "Global data not found")
		return
	}
	WriteSuccess(w, infos)
}

// PageSections handles GET /{pageSlug}/sections.
func (h *Handler) PageSections(w http.ResponseWriter, r *http.Request) {
	pageSlug := chi.URLParam(r, "pageSlug")
	if !util.IsValidSlug(pageSlug) {
		WriteBadRequest(w, "Invalid page slug")
		return
	}

	page, err := h.lister.Sections(r.Context(), pageSlug)
	if err != nil {
		h.writeStoreError(w, err, "Global data not found")
		return
	}
	WriteSuccess(w, page)
}

// PageSection handles GET /{pageSlug}/sections/{sectionID}.
func (h *Handler) PageSection(w http.ResponseWriter, r *http.Request) {
	pageSlug := chi.URLParam(r, "pageSlug")
	sectionID := chi.URLParam(r, "sectionID")
	if pageSlug == "" || sectionID == "" {
		WriteBadRequest(w, "Missing page slug or section id")
		return
	}

	sec, err := h.resolver.Resolve(r.Context(), pageSlug, sectionID)
	if err != nil {
		h.writeStoreError(w, err, "Global data not found")
		return
	}
	WriteSuccess(w, sec)
}

// DynamicPages handles GET /dynamic-pages?category=&limit=&page=.
func (h *Handler) DynamicPages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 20
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteBadRequest(w, "Invalid limit parameter")
			return
		}
		limit = n
	}
	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteBadRequest(w, "Invalid page parameter")
			return
		}
		page = n
	}

	list, err := h.lister.DynamicPages(r.Context(), q.Get("category"), limit, page)
	if err != nil {
		h.writeStoreError(w, err, "Pages not found")
		return
	}
	WriteSuccess(w, list)
}

// DynamicPageBySlug handles GET /pages/{slug}, published pages only.
func (h *Handler) DynamicPageBySlug(w http.ResponseWriter, r *http.Request) {
	h.dynamicPageBySlug(w, r, chi.URLParam(r, "slug"))
}

// DynamicPageByRootSlug handles GET /{pageSlug}, the short form of the
// published page lookup. Static routes take precedence over it.
func (h *Handler) DynamicPageByRootSlug(w http.ResponseWriter, r *http.Request) {
	h.dynamicPageBySlug(w, r, chi.URLParam(r, "pageSlug"))
}

func (h *Handler) dynamicPageBySlug(w http.ResponseWriter, r *http.Request, slug string) {
	if slug == "" {
		WriteBadRequest(w, "Missing page slug")
		return
	}

	page, err := h.queries.GetPublishedDynamicPageBySlug(r.Context(), slug)
	if err != nil {
		h.writeStoreError(w, err, "Page not found")
		return
	}
	WriteSuccess(w, page)
}

// UnifiedPage handles GET /unified-page/{slug} and GET /globals/{slug}.
func (h *Handler) UnifiedPage(w http.ResponseWriter, r *http.Request) {
	h.unifiedPage(w, r, chi.URLParam(r, "slug"))
}

// UnifiedPageByQuery handles GET /unified-page?slug=.
func (h *Handler) UnifiedPageByQuery(w http.ResponseWriter, r *http.Request) {
	h.unifiedPage(w, r, r.URL.Query().Get("slug"))
}

func (h *Handler) unifiedPage(w http.ResponseWriter, r *http.Request, slug string) {
	if slug == "" {
		WriteBadRequest(w, "Missing slug parameter")
		return
	}

	page, err := h.resolver.UnifiedPage(r.Context(), slug)
	if err != nil {
		h.writeStoreError(w, err, "Page not found")
		return
	}
	WriteSuccess(w, page)
}

// DepartmentsNav handles GET /departments-nav.
func (h *Handler) DepartmentsNav(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lister.DepartmentNav(r.Context())
	if err != nil {
		h.writeStoreError(w, err, "Departments not found")
		return
	}
	WriteSuccess(w, entries)
}

// DepartmentContent handles GET /department-content/{slug}.
func (h *Handler) DepartmentContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		WriteBadRequest(w, "Missing department slug")
		return
	}

	dept, err := h.lister.DepartmentContent(r.Context(), slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			WriteNotFound(w, "Department not found")
			return
		}
		h.writeStoreError(w, err, "Department not found")
		return
	}
	WriteSuccess(w, dept)
}
