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
	"github.com/campuscms/campuscms/internal/webhook"
)

// MediaRequest is the request body for registering a media record. The
// binary itself lives with the storage collaborator; this core tracks
// metadata and ownership.
type MediaRequest struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// CreateMedia handles POST /media.
func (h *Handler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.MediaAccess(policy.OpCreate, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	var req MediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Filename == "" || req.Path == "" {
		WriteBadRequest(w, "Filename and path are required")
		return
	}

	media, err := h.queries.CreateMedia(r.Context(), store.CreateMediaParams{
		Filename:   req.Filename,
		Path:       req.Path,
		MimeType:   req.MimeType,
		Size:       req.Size,
		UploadedBy: p.ID,
	})
	if err != nil {
		h.writeStoreError(w, err, "Media not found")
		return
	}

	h.hooks.DispatchEvent(r.Context(), model.EventMediaCreated, webhook.MediaEventData{
		ID: media.ID, UUID: media.UUID, Filename: media.Filename,
		MimeType: media.MimeType, Size: media.Size, UploadedBy: media.UploadedBy,
	})
	WriteCreated(w, media)
}

// ListMedia handles GET /media under the caller's read scope.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			WriteBadRequest(w, "Invalid limit parameter")
			return
		}
		limit = n
	}

	p := middleware.PrincipalFrom(r)
	media, err := h.queries.ListMedia(r.Context(), policy.MediaAccess(policy.OpRead, p), limit, 0)
	if err != nil {
		h.writeStoreError(w, err, "Media not found")
		return
	}
	WriteSuccess(w, media)
}

// RenameMedia handles PUT /media/{id}. A blogger may only rename files
// they uploaded; the scope filter enforces that in the store.
func (h *Handler) RenameMedia(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid media id")
		return
	}

	p := middleware.PrincipalFrom(r)
	decision := policy.MediaAccess(policy.OpUpdate, p)
	if decision.IsDeny() {
		WriteForbidden(w, "Forbidden")
		return
	}

	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		WriteBadRequest(w, "Filename is required")
		return
	}

	if err := h.queries.UpdateMediaFilename(r.Context(), id, req.Filename, decision); err != nil {
		h.writeStoreError(w, err, "Media not found")
		return
	}
	WriteSuccess(w, map[string]any{"id": id, "filename": req.Filename})
}

// DeleteMedia handles DELETE /media/{id}.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid media id")
		return
	}

	p := middleware.PrincipalFrom(r)
	decision := policy.MediaAccess(policy.OpDelete, p)
	if decision.IsDeny() {
		WriteForbidden(w, "Forbidden")
		return
	}

	media, err := h.queries.GetMedia(r.Context(), id, decision)
	if err != nil {
		h.writeStoreError(w, err, "Media not found")
		return
	}
	if err := h.queries.DeleteMedia(r.Context(), id, decision); err != nil {
		h.writeStoreError(w, err, "Media not found")
		return
	}

	h.hooks.DispatchEvent(r.Context(), model.EventMediaDeleted, webhook.MediaEventData{
		ID: media.ID, UUID: media.UUID, Filename: media.Filename,
		MimeType: media.MimeType, Size: media.Size, UploadedBy: media.UploadedBy,
	})
	WriteSuccess(w, map[string]any{"deleted": true})
}
