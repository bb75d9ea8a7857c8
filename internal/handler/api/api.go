// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers for CampusCMS.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/content"
	"github.com/campuscms/campuscms/internal/registry"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/webhook"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	queries  *store.Queries
	reg      *registry.Registry
	resolver *content.Resolver
	lister   *content.Lister
	hooks    *webhook.Dispatcher
	logger   *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(queries *store.Queries, reg *registry.Registry, resolver *content.Resolver, lister *content.Lister, hooks *webhook.Dispatcher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		queries:  queries,
		reg:      reg,
		resolver: resolver,
		lister:   lister,
		hooks:    hooks,
		logger:   logger,
	}
}

// PublicRoutes mounts the read-only content endpoints.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/global-pages", h.GlobalPages)
	r.Get("/dynamic-pages", h.DynamicPages)
	r.Get("/pages/{slug}", h.DynamicPageBySlug)
	r.Get("/unified-page", h.UnifiedPageByQuery)
	r.Get("/unified-page/{slug}", h.UnifiedPage)
	r.Get("/globals/{slug}", h.UnifiedPage)
	r.Get("/departments-nav", h.DepartmentsNav)
	r.Get("/department-content/{slug}", h.DepartmentContent)
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{id}", h.GetPost)
	r.Get("/{pageSlug}", h.DynamicPageByRootSlug)
	r.Get("/{pageSlug}/sections", h.PageSections)
	r.Get("/{pageSlug}/sections/{sectionID}", h.PageSection)
}

// EditorRoutes mounts the authenticated mutation endpoints.
func (h *Handler) EditorRoutes(r chi.Router) {
	r.Post("/dynamic-pages", h.CreateDynamicPage)
	r.Put("/dynamic-pages/{id}", h.UpdateDynamicPage)
	r.Delete("/dynamic-pages/{id}", h.DeleteDynamicPage)

	r.Put("/globals/{slug}/sections", h.UpdateGlobalSections)
	r.Put("/globals/{slug}/fields/{key}", h.UpdateGlobalField)

	r.Post("/posts", h.CreatePost)
	r.Put("/posts/{id}", h.UpdatePost)
	r.Delete("/posts/{id}", h.DeletePost)

	r.Post("/media", h.CreateMedia)
	r.Get("/media", h.ListMedia)
	r.Put("/media/{id}", h.RenameMedia)
	r.Delete("/media/{id}", h.DeleteMedia)

	r.Post("/users", h.CreateUser)
	r.Get("/users", h.ListUsers)
	r.Get("/users/{id}", h.GetUser)
	r.Put("/users/{id}", h.UpdateUser)
	r.Delete("/users/{id}", h.DeleteUser)

	r.Post("/api-keys", h.CreateAPIKey)
	r.Get("/api-keys", h.ListAPIKeys)
	r.Delete("/api-keys/{id}", h.RevokeAPIKey)

	r.Post("/webhooks", h.CreateWebhook)
	r.Delete("/webhooks/{id}", h.DeleteWebhook)

	r.Post("/departments", h.CreateDepartment)
	r.Put("/departments/{slug}/sections", h.UpdateDepartmentSections)
}
