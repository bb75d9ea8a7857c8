// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package policy

import (
	"testing"

	"github.com/campuscms/campuscms/internal/model"
)

func principalWithRole(role string) *model.Principal {
	if role == model.RoleAnonymous {
		return nil
	}
	return &model.Principal{ID: "u1", Email: "u1@example.edu", Role: role}
}

// Every policy family must return a decision for every role and operation
// without panicking, including the anonymous (nil) principal.
func TestPolicyTotality(t *testing.T) {
	families := map[string]func(Operation, *model.Principal) Decision{
		"UniversalAccess":                     UniversalAccess,
		"UniversalAccessPublished":            UniversalAccessPublished,
		"AdminAndBlogger":                     AdminAndBlogger,
		"AdminAndBloggerWithSuperAdminAccess": AdminAndBloggerWithSuperAdminAccess,
		"BlogPostAccess":                      BlogPostAccess,
		"MediaAccess":                         MediaAccess,
		"UserAccess":                          UserAccess,
	}
	roles := []string{model.RoleSuperAdmin, model.RoleAdmin, model.RoleBlogger, model.RoleAnonymous}

	for name, fn := range families {
		for _, role := range roles {
			for _, op := range Operations() {
				d := fn(op, principalWithRole(role))
				// Exactly one of the three states holds.
				states := 0
				if d.IsAllow() {
					states++
				}
				if d.IsDeny() {
					states++
				}
				if _, _, ok := d.Scope(); ok {
					states++
				}
				if states != 1 {
					t.Errorf("%s(%s, %s): decision in %d states", name, op, role, states)
				}
			}
		}
	}
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role            string
		isSuper         bool
		isAdmin         bool
		isBlogger       bool
		isAdminOrBlogge bool
	}{
		{model.RoleSuperAdmin, true, false, false, true},
		{model.RoleAdmin, false, true, false, true},
		{model.RoleBlogger, false, false, true, true},
		{model.RoleAnonymous, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			p := principalWithRole(tt.role)
			if got := IsSuperAdmin(p); got != tt.isSuper {
				t.Errorf("IsSuperAdmin = %v, want %v", got, tt.isSuper)
			}
			if got := IsAdmin(p); got != tt.isAdmin {
				t.Errorf("IsAdmin = %v, want %v", got, tt.isAdmin)
			}
			if got := IsBlogger(p); got != tt.isBlogger {
				t.Errorf("IsBlogger = %v, want %v", got, tt.isBlogger)
			}
			if got := IsAdminOrBlogger(p); got != tt.isAdminOrBlogge {
				t.Errorf("IsAdminOrBlogger = %v, want %v", got, tt.isAdminOrBlogge)
			}
		})
	}
}

func TestUniversalAccess(t *testing.T) {
	for _, op := range Operations() {
		if !UniversalAccess(op, principalWithRole(model.RoleSuperAdmin)).IsAllow() {
			t.Errorf("superadmin should pass %s", op)
		}
		if !UniversalAccess(op, principalWithRole(model.RoleAdmin)).IsAllow() {
			t.Errorf("admin should pass %s", op)
		}
		if !UniversalAccess(op, principalWithRole(model.RoleBlogger)).IsDeny() {
			t.Errorf("blogger should be denied %s", op)
		}
		if !UniversalAccess(op, nil).IsDeny() {
			t.Errorf("anonymous should be denied %s", op)
		}
	}
}

func TestUniversalAccessPublished(t *testing.T) {
	if !UniversalAccessPublished(OpRead, nil).IsAllow() {
		t.Error("anonymous read should be unrestricted")
	}
	if !UniversalAccessPublished(OpRead, principalWithRole(model.RoleBlogger)).IsAllow() {
		t.Error("blogger read should be unrestricted")
	}
	for _, op := range []Operation{OpCreate, OpUpdate, OpDelete} {
		if !UniversalAccessPublished(op, nil).IsDeny() {
			t.Errorf("anonymous %s should be denied", op)
		}
		if !UniversalAccessPublished(op, principalWithRole(model.RoleBlogger)).IsDeny() {
			t.Errorf("blogger %s should be denied", op)
		}
		if !UniversalAccessPublished(op, principalWithRole(model.RoleAdmin)).IsAllow() {
			t.Errorf("admin %s should be allowed", op)
		}
	}
}

// A blogger issued read/update/delete must receive an ownership scope
// filter, not a flat allow and not a denial.
func TestBloggerOwnershipScoping(t *testing.T) {
	blogger := &model.Principal{ID: "u1", Role: model.RoleBlogger}

	tests := []struct {
		name      string
		fn        func(Operation, *model.Principal) Decision
		wantField string
	}{
		{"blog posts", BlogPostAccess, FieldAuthor},
		{"media", MediaAccess, FieldUploadedBy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, op := range []Operation{OpRead, OpUpdate, OpDelete} {
				d := tt.fn(op, blogger)
				field, value, ok := d.Scope()
				if !ok {
					t.Fatalf("%s: decision is not scoped", op)
				}
				if field != tt.wantField || value != "u1" {
					t.Errorf("%s: scope = %s=%s, want %s=u1", op, field, value, tt.wantField)
				}
			}
			if !tt.fn(OpCreate, blogger).IsAllow() {
				t.Error("create should be unrestricted for bloggers")
			}
		})
	}
}

// A blogger's scope filter must not match rows owned by someone else: the
// operation affects zero rows rather than erroring.
func TestScopeFilterExcludesForeignRows(t *testing.T) {
	d := BlogPostAccess(OpUpdate, &model.Principal{ID: "b1", Role: model.RoleBlogger})

	if !d.Permits("b1") {
		t.Error("own row should be permitted")
	}
	if d.Permits("b2") {
		t.Error("foreign row must not be permitted")
	}
}

func TestMediaAccessAnonymous(t *testing.T) {
	if !MediaAccess(OpRead, nil).IsAllow() {
		t.Error("media must be publicly readable")
	}
	for _, op := range []Operation{OpCreate, OpUpdate, OpDelete} {
		if !MediaAccess(op, nil).IsDeny() {
			t.Errorf("anonymous media %s should be denied", op)
		}
	}
}

func TestUserAccess(t *testing.T) {
	super := principalWithRole(model.RoleSuperAdmin)
	admin := principalWithRole(model.RoleAdmin)
	blogger := principalWithRole(model.RoleBlogger)

	if !UserAccess(OpCreate, admin).IsAllow() {
		t.Error("admin should create users")
	}
	if !UserAccess(OpCreate, blogger).IsDeny() {
		t.Error("blogger must not create users")
	}
	if !UserAccess(OpDelete, super).IsAllow() {
		t.Error("superadmin should delete users")
	}
	if !UserAccess(OpDelete, admin).IsDeny() {
		t.Error("delete is superadmin-only")
	}

	for _, op := range []Operation{OpRead, OpUpdate} {
		d := UserAccess(op, blogger)
		field, value, ok := d.Scope()
		if !ok || field != FieldUserID || value != "u1" {
			t.Errorf("blogger %s: scope = %s=%s ok=%v, want id=u1", op, field, value, ok)
		}
		if !UserAccess(op, admin).IsAllow() {
			t.Errorf("admin %s should be unrestricted", op)
		}
		if !UserAccess(op, nil).IsDeny() {
			t.Errorf("anonymous %s should be denied", op)
		}
	}
}
