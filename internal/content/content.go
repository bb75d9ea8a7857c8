// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content resolves page slugs and section identifiers to content
// blocks and builds the navigation listings. It is HTTP-free: handlers
// translate its errors to status codes.
//
// Slug precedence is dynamic-first everywhere: a published dynamic page
// shadows a global page with the same slug, consistently across the
// resolver, the unified lookup and the wrapper endpoints.
package content

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/campuscms/campuscms/internal/store"
)

// ErrNotFound reports a slug or section that does not resolve. Absent,
// unpublished, inactive and empty are deliberately indistinguishable here.
var ErrNotFound = store.ErrNotFound

const sectionIndexPrefix = "section-"

// SectionIndexID renders the stable identifier of the i-th generic section.
func SectionIndexID(i int) string {
	return fmt.Sprintf("%s%d", sectionIndexPrefix, i)
}

// ParseSectionIndex extracts the array index from a "section-{index}"
// identifier. Returns false for anything else, including negative indexes.
func ParseSectionIndex(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, sectionIndexPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
