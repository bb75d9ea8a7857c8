// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package policy implements role-based access decisions for every resource
// kind. Policy functions are pure: they consult only the principal's
// identity and the declared ownership field of the resource, never request
// bodies, and they are total over the anonymous (nil) principal.
package policy

// Operation is one of the four gated operations.
type Operation string

// Gated operations.
const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Operations returns all gated operations.
func Operations() []Operation {
	return []Operation{OpCreate, OpRead, OpUpdate, OpDelete}
}

type decisionKind int

const (
	kindDeny decisionKind = iota
	kindAllow
	kindScoped
)

// Decision is the tri-state result of an authorization check: unrestricted
// allow, flat deny, or an allow narrowed by a single-field equality scope
// the storage layer can push down as WHERE field = value.
//
// A deny is never an error: callers treat it as "no rows" or 403 at the
// transport boundary.
type Decision struct {
	kind  decisionKind
	field string
	value string
}

// Allow returns an unrestricted allow.
func Allow() Decision { return Decision{kind: kindAllow} }

// Deny returns a flat denial.
func Deny() Decision { return Decision{kind: kindDeny} }

// AllowWhere returns an allow scoped to rows where field equals value.
func AllowWhere(field, value string) Decision {
	return Decision{kind: kindScoped, field: field, value: value}
}

// IsAllow reports an unrestricted allow.
func (d Decision) IsAllow() bool { return d.kind == kindAllow }

// IsDeny reports a flat denial.
func (d Decision) IsDeny() bool { return d.kind == kindDeny }

// Scope returns the ownership predicate of a scoped allow.
// ok is false for flat allow and deny.
func (d Decision) Scope() (field, value string, ok bool) {
	if d.kind != kindScoped {
		return "", "", false
	}
	return d.field, d.value, true
}

// Permits reports whether the decision lets the operation touch a row whose
// ownership field holds owner. Unrestricted allows permit any row.
func (d Decision) Permits(owner string) bool {
	switch d.kind {
	case kindAllow:
		return true
	case kindScoped:
		return d.value == owner
	}
	return false
}
