// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// errorResponse is the error envelope shared with the API handlers.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// bearerToken extracts the Bearer token from the Authorization header.
// Returns "" when the header is absent or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Authenticate resolves a Bearer API key into a principal on the request
// context. Requests without credentials stay anonymous; requests carrying
// an invalid, inactive or expired key are rejected so a failed credential
// never silently downgrades to anonymous.
func Authenticate(queries *store.Queries, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawKey := bearerToken(r)
			if rawKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			key, err := queries.GetAPIKeyByHash(r.Context(), model.HashAPIKey(rawKey))
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeError(w, http.StatusForbidden, "Invalid API key")
					return
				}
				logger.Error("api key lookup failed", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !key.IsActive || key.IsExpired() {
				writeError(w, http.StatusForbidden, "API key is inactive or expired")
				return
			}

			user, err := queries.GetUserByID(r.Context(), key.UserID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeError(w, http.StatusForbidden, "Invalid API key")
					return
				}
				logger.Error("api key user lookup failed", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			touchAPIKey(queries, key.ID)

			ctx := WithPrincipal(r.Context(), user.Principal())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests. Used on editor route groups;
// per-operation authorization stays with the policy engine.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFrom(r) == nil {
			writeError(w, http.StatusForbidden, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// touchAPIKey updates the key's last-used timestamp off the request path.
func touchAPIKey(queries *store.Queries, keyID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queries.TouchAPIKey(ctx, keyID)
	}()
}
