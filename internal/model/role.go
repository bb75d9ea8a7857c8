// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including Principal, Section, Page and webhook structures.
package model

// User roles. RoleAnonymous is never stored; it denotes the absence
// of an authenticated principal.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleBlogger    = "blogger"
	RoleAnonymous  = "anonymous"
)

// ValidRoles returns the roles a stored user may carry.
func ValidRoles() []string {
	return []string{RoleSuperAdmin, RoleAdmin, RoleBlogger}
}

// IsValidRole reports whether role is an assignable user role.
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleBlogger:
		return true
	}
	return false
}

// Principal is the authenticated identity attached to a request.
// A nil *Principal denotes an anonymous request.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RoleOf returns the principal's role, or RoleAnonymous for nil.
func RoleOf(p *Principal) string {
	if p == nil {
		return RoleAnonymous
	}
	return p.Role
}
