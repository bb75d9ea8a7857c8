// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/policy"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/util"
)

// DepartmentRequest is the request body for creating a department.
type DepartmentRequest struct {
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	HeroTitle string          `json:"heroTitle"`
	Priority  int             `json:"priority"`
	IsActive  bool            `json:"isActive"`
	Sections  []model.Section `json:"sections"`
}

// CreateDepartment handles POST /departments. Editors only.
func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.UniversalAccess(policy.OpCreate, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	var req DepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		WriteBadRequest(w, "Name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Name)
	}
	if !util.IsValidSlug(req.Slug) {
		WriteBadRequest(w, "Invalid slug")
		return
	}
	for i := range req.Sections {
		if err := req.Sections[i].Validate(); err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
	}

	dept, err := h.queries.CreateDepartment(r.Context(), store.CreateDepartmentParams{
		Slug:      req.Slug,
		Name:      req.Name,
		HeroTitle: req.HeroTitle,
		Priority:  req.Priority,
		IsActive:  req.IsActive,
		Sections:  req.Sections,
	})
	if err != nil {
		h.writeStoreError(w, err, "Department not found")
		return
	}

	h.lister.InvalidateDepartments(r.Context())
	WriteCreated(w, dept)
}

// UpdateDepartmentSections handles PUT /departments/{slug}/sections.
func (h *Handler) UpdateDepartmentSections(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.UniversalAccess(policy.OpUpdate, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	slug := chi.URLParam(r, "slug")

	var req struct {
		Sections []model.Section `json:"sections"`
	}
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

	if err := h.queries.UpdateDepartmentSections(r.Context(), slug, req.Sections); err != nil {
		h.writeStoreError(w, err, "Department not found")
		return
	}

	h.lister.InvalidateDepartments(r.Context())
	WriteSuccess(w, map[string]any{"slug": slug, "sections": len(req.Sections)})
}
