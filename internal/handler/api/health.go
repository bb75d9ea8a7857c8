// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/campuscms/campuscms/internal/version"
)

// Healthz handles GET /healthz. Reports service and database status.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DB().PingContext(r.Context()); err != nil {
		h.logger.Error("health check database ping failed", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	WriteSuccess(w, map[string]string{
		"status":  "ok",
		"version": version.Current().String(),
	})
}
