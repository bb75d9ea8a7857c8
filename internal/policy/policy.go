// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package policy

import "github.com/campuscms/campuscms/internal/model"

// Ownership columns referenced by scoped decisions.
const (
	FieldAuthor     = "author"
	FieldUploadedBy = "uploaded_by"
	FieldUserID     = "id"
)

// IsSuperAdmin reports whether the principal holds the superadmin role.
func IsSuperAdmin(p *model.Principal) bool {
	return p != nil && p.Role == model.RoleSuperAdmin
}

// IsAdmin reports whether the principal holds the admin role.
func IsAdmin(p *model.Principal) bool {
	return p != nil && p.Role == model.RoleAdmin
}

// IsBlogger reports whether the principal holds the blogger role.
func IsBlogger(p *model.Principal) bool {
	return p != nil && p.Role == model.RoleBlogger
}

// IsAdminOrBlogger reports whether the principal holds any of the
// admin, superadmin or blogger roles.
func IsAdminOrBlogger(p *model.Principal) bool {
	return IsSuperAdmin(p) || IsAdmin(p) || IsBlogger(p)
}

// isEditor groups the two unrestricted editor roles.
func isEditor(p *model.Principal) bool {
	return IsSuperAdmin(p) || IsAdmin(p)
}

// UniversalAccess gates editor-only resources (departments, regulations,
// examinations): SuperAdmin and Admin unrestricted on all operations,
// everyone else denied.
func UniversalAccess(_ Operation, p *model.Principal) Decision {
	if isEditor(p) {
		return Allow()
	}
	return Deny()
}

// UniversalAccessPublished gates public content: read is unrestricted for
// everyone, writes remain editor-only.
func UniversalAccessPublished(op Operation, p *model.Principal) Decision {
	if op == OpRead {
		return Allow()
	}
	return UniversalAccess(op, p)
}

// AdminAndBlogger gates shared non-owned content that bloggers also manage:
// SuperAdmin, Admin and Blogger all pass unrestricted.
func AdminAndBlogger(_ Operation, p *model.Principal) Decision {
	if IsAdminOrBlogger(p) {
		return Allow()
	}
	return Deny()
}

// AdminAndBloggerWithSuperAdminAccess gates institutionally sensitive
// resources (NAAC, About). The gating is identical to AdminAndBlogger;
// the separate family keeps the SuperAdmin primacy of those resources
// extendable without touching the shared policy.
func AdminAndBloggerWithSuperAdminAccess(op Operation, p *model.Principal) Decision {
	return AdminAndBlogger(op, p)
}

// BlogPostAccess gates blog posts: editors unrestricted; bloggers may create
// freely but read, update and delete only their own rows; anonymous denied.
func BlogPostAccess(op Operation, p *model.Principal) Decision {
	if isEditor(p) {
		return Allow()
	}
	if IsBlogger(p) {
		if op == OpCreate {
			return Allow()
		}
		return AllowWhere(FieldAuthor, p.ID)
	}
	return Deny()
}

// MediaAccess gates media records. Media must be publicly servable, so
// anonymous read is unrestricted; editors are unrestricted on everything;
// bloggers manage only what they uploaded; anonymous writes are denied.
func MediaAccess(op Operation, p *model.Principal) Decision {
	if isEditor(p) {
		return Allow()
	}
	if IsBlogger(p) {
		if op == OpCreate {
			return Allow()
		}
		return AllowWhere(FieldUploadedBy, p.ID)
	}
	if op == OpRead {
		return Allow()
	}
	return Deny()
}

// UserAccess gates user accounts: creation needs an editor, deletion needs
// the superadmin; read and update are unrestricted for editors and
// self-scoped for everyone else.
func UserAccess(op Operation, p *model.Principal) Decision {
	switch op {
	case OpCreate:
		if isEditor(p) {
			return Allow()
		}
		return Deny()
	case OpDelete:
		if IsSuperAdmin(p) {
			return Allow()
		}
		return Deny()
	default:
		if isEditor(p) {
			return Allow()
		}
		if p != nil {
			return AllowWhere(FieldUserID, p.ID)
		}
		return Deny()
	}
}
