// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/policy"
	"github.com/campuscms/campuscms/internal/store"
)

// CreateAPIKeyRequest is the request body for issuing an API key.
// UserID defaults to the caller; issuing for another user needs admin.
type CreateAPIKeyRequest struct {
	Name      string `json:"name"`
	UserID    string `json:"user_id,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"` // RFC3339, optional
}

// CreateAPIKey handles POST /api-keys. The raw key is returned exactly
// once; only its hash is stored.
func (h *Handler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)

	var req CreateAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		WriteBadRequest(w, "Name is required")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = p.ID
	}
	if userID != p.ID && !policy.IsAdmin(p) && !policy.IsSuperAdmin(p) {
		WriteForbidden(w, "Forbidden")
		return
	}

	var expiresAt sql.NullTime
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			WriteBadRequest(w, "Invalid expires_at, want RFC3339")
			return
		}
		expiresAt = sql.NullTime{Time: t.UTC(), Valid: true}
	}

	// The key must belong to a real user; its role is resolved on use.
	if _, err := h.queries.GetUserByID(r.Context(), userID); err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		h.logger.Error("api key generation failed", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}

	key, err := h.queries.CreateAPIKey(r.Context(), store.CreateAPIKeyParams{
		Name:      req.Name,
		KeyHash:   model.HashAPIKey(rawKey),
		KeyPrefix: prefix,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		h.writeStoreError(w, err, "API key not found")
		return
	}

	WriteCreated(w, map[string]any{
		"id":         key.ID,
		"name":       key.Name,
		"key":        rawKey,
		"key_prefix": key.KeyPrefix,
		"user_id":    key.UserID,
	})
}

// ListAPIKeys handles GET /api-keys. Callers see their own keys; admins may
// pass ?user_id= to inspect another user's.
func (h *Handler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = p.ID
	}
	if userID != p.ID && !policy.IsAdmin(p) && !policy.IsSuperAdmin(p) {
		WriteForbidden(w, "Forbidden")
		return
	}

	keys, err := h.queries.ListAPIKeysForUser(r.Context(), userID)
	if err != nil {
		h.writeStoreError(w, err, "API key not found")
		return
	}
	if keys == nil {
		keys = []model.APIKey{}
	}
	WriteSuccess(w, keys)
}

// RevokeAPIKey handles DELETE /api-keys/{id}. Owner or admin. The record is
// deactivated, not deleted, so last-used history survives.
func (h *Handler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid API key id")
		return
	}

	key, err := h.queries.GetAPIKeyByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err, "API key not found")
		return
	}
	if key.UserID != p.ID && !policy.IsAdmin(p) && !policy.IsSuperAdmin(p) {
		// Do not confirm the key exists to callers who cannot touch it.
		WriteNotFound(w, "API key not found")
		return
	}

	if err := h.queries.DeactivateAPIKey(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "API key not found")
		return
	}
	WriteSuccess(w, map[string]any{"revoked": true})
}
