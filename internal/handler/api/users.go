// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/auth"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/policy"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/webhook"
)

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest is the request body for updating a user profile.
type UpdateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CreateUser handles POST /users. Editors only.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.UserAccess(policy.OpCreate, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required")
		return
	}
	if !model.IsValidRole(req.Role) {
		WriteBadRequest(w, "Invalid role")
		return
	}
	// Only a superadmin may mint another superadmin.
	if req.Role == model.RoleSuperAdmin && !policy.IsSuperAdmin(p) {
		WriteForbidden(w, "Forbidden")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hash failed", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
	})
	if err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}

	h.hooks.DispatchEvent(r.Context(), model.EventUserCreated, webhook.UserEventData{
		ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role,
	})
	WriteCreated(w, user)
}

// ListUsers handles GET /users. A blogger's read scope narrows the listing
// to their own account.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	users, err := h.queries.ListUsers(r.Context(), policy.UserAccess(policy.OpRead, p))
	if err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}
	WriteSuccess(w, users)
}

// GetUser handles GET /users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := middleware.PrincipalFrom(r)

	user, err := h.queries.GetUser(r.Context(), id, policy.UserAccess(policy.OpRead, p))
	if err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}
	WriteSuccess(w, user)
}

// UpdateUser handles PUT /users/{id}. Bloggers may update only themselves;
// the self scope is pushed into the store query.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := middleware.PrincipalFrom(r)

	decision := policy.UserAccess(policy.OpUpdate, p)
	if decision.IsDeny() {
		WriteForbidden(w, "Forbidden")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if !model.IsValidRole(req.Role) {
		WriteBadRequest(w, "Invalid role")
		return
	}
	// Role escalation needs an editor; self-service updates keep the role.
	if _, _, scoped := decision.Scope(); scoped {
		current, err := h.queries.GetUserByID(r.Context(), id)
		if err == nil && current.Role != req.Role {
			WriteForbidden(w, "Forbidden")
			return
		}
	}
	if req.Role == model.RoleSuperAdmin && !policy.IsSuperAdmin(p) {
		WriteForbidden(w, "Forbidden")
		return
	}

	user, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:    id,
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}, decision)
	if err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}
	WriteSuccess(w, user)
}

// DeleteUser handles DELETE /users/{id}. Superadmin only.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := middleware.PrincipalFrom(r)

	if !policy.UserAccess(policy.OpDelete, p).IsAllow() {
		WriteForbidden(w, "Forbidden")
		return
	}
	if p.ID == id {
		WriteBadRequest(w, "Cannot delete your own account")
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}
	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}

	h.hooks.DispatchEvent(r.Context(), model.EventUserDeleted, webhook.UserEventData{
		ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role,
	})
	WriteSuccess(w, map[string]any{"deleted": true})
}
