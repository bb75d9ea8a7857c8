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
)

// CreateWebhookRequest is the request body for subscribing a webhook.
type CreateWebhookRequest struct {
	Name   string   `json:"name"`
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

// CreateWebhook handles POST /webhooks. Admins only. The signing secret is
// generated server-side and returned exactly once.
func (h *Handler) CreateWebhook(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.IsAdmin(p) && !policy.IsSuperAdmin(p) {
		WriteForbidden(w, "Forbidden")
		return
	}

	var req CreateWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.URL == "" {
		WriteBadRequest(w, "Name and url are required")
		return
	}
	if len(req.Events) == 0 {
		WriteBadRequest(w, "At least one event is required")
		return
	}
	known := make(map[string]bool)
	for _, e := range model.AllWebhookEvents() {
		known[e] = true
	}
	for _, e := range req.Events {
		if !known[e] {
			WriteBadRequest(w, "Unknown event: "+e)
			return
		}
	}

	secret, err := model.GenerateWebhookSecret()
	if err != nil {
		h.logger.Error("webhook secret generation failed", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}

	wh, err := h.queries.CreateWebhook(r.Context(), store.CreateWebhookParams{
		Name:      req.Name,
		URL:       req.URL,
		Secret:    secret,
		Events:    req.Events,
		CreatedBy: p.ID,
	})
	if err != nil {
		h.writeStoreError(w, err, "Webhook not found")
		return
	}

	WriteCreated(w, map[string]any{
		"id":     wh.ID,
		"name":   wh.Name,
		"url":    wh.URL,
		"events": req.Events,
		"secret": secret,
	})
}

// DeleteWebhook handles DELETE /webhooks/{id}. Admins only.
func (h *Handler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFrom(r)
	if !policy.IsAdmin(p) && !policy.IsSuperAdmin(p) {
		WriteForbidden(w, "Forbidden")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid webhook id")
		return
	}

	if err := h.queries.DeleteWebhook(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "Webhook not found")
		return
	}
	WriteSuccess(w, map[string]any{"deleted": true})
}
