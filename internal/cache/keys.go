// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import "fmt"

// Key prefixes for cached listings. Mutations invalidate by prefix so a
// single write clears every variant of the affected listing.
const (
	PrefixDynamicPages = "pages:"
	PrefixGlobalPages  = "globals:"
	PrefixDepartments  = "departments:"
)

// KeyDynamicPageList builds the cache key for a published-pages listing.
func KeyDynamicPageList(category string, limit, offset int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%slist:%s:%d:%d", PrefixDynamicPages, category, limit, offset)
}

// KeyGlobalPageList is the cache key for the fixed-page status listing.
func KeyGlobalPageList() string {
	return PrefixGlobalPages + "list"
}

// KeyDepartmentNav is the cache key for the department navigation listing.
func KeyDepartmentNav() string {
	return PrefixDepartments + "nav"
}
