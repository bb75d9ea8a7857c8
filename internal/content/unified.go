// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// Source collections reported by the unified lookup.
const (
	SourceDynamicPages = "dynamic-pages"
	SourceGlobals      = "globals"
)

// UnifiedPage is the normalized shape shared by dynamic and global pages.
type UnifiedPage struct {
	PageType  string          `json:"pageType"`
	Source    string          `json:"source"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	HeroTitle string          `json:"heroTitle,omitempty"`
	Category  string          `json:"category,omitempty"`
	Priority  int             `json:"priority,omitempty"`
	Sections  []model.Section `json:"sections"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UnifiedPage resolves slug against published dynamic pages first, falling
// through to the global registry. An unpublished dynamic page does not
// shadow a global page of the same slug.
func (r *Resolver) UnifiedPage(ctx context.Context, slug string) (UnifiedPage, error) {
	dyn, err := r.store.GetPublishedDynamicPageBySlug(ctx, slug)
	switch {
	case err == nil:
		return UnifiedPage{
			PageType:  model.PageTypeDynamic,
			Source:    SourceDynamicPages,
			Slug:      dyn.Slug,
			Title:     dyn.Title,
			HeroTitle: dyn.HeroTitle,
			Category:  dyn.Category,
			Priority:  dyn.Priority,
			Sections:  sortedSections(dyn.Sections),
			UpdatedAt: dyn.UpdatedAt,
		}, nil
	case !errors.Is(err, store.ErrNotFound):
		return UnifiedPage{}, fmt.Errorf("unified lookup %s: %w", slug, err)
	}

	desc, ok := r.reg.Lookup(slug)
	if !ok {
		return UnifiedPage{}, ErrNotFound
	}

	page, err := r.store.GetGlobalPage(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return UnifiedPage{}, ErrNotFound
		}
		return UnifiedPage{}, fmt.Errorf("unified lookup %s: %w", slug, err)
	}
	if !page.IsActive {
		return UnifiedPage{}, ErrNotFound
	}

	title := page.Title
	if title == "" {
		title = desc.Title
	}
	return UnifiedPage{
		PageType:  model.PageTypeGlobal,
		Source:    SourceGlobals,
		Slug:      page.Slug,
		Title:     title,
		HeroTitle: page.HeroTitle,
		Sections:  sortedSections(page.Sections),
		UpdatedAt: page.UpdatedAt,
	}, nil
}

// DepartmentContent loads one active department with its sections in
// display order.
func (l *Lister) DepartmentContent(ctx context.Context, slug string) (model.Department, error) {
	dept, err := l.store.GetActiveDepartmentBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Department{}, ErrNotFound
		}
		return model.Department{}, fmt.Errorf("department %s: %w", slug, err)
	}
	dept.Sections = sortedSections(dept.Sections)
	return dept, nil
}

func sortedSections(sections []model.Section) []model.Section {
	out := make([]model.Section, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
