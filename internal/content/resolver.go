// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/registry"
	"github.com/campuscms/campuscms/internal/store"
)

// ResolvedSection is the result of resolving one (pageSlug, sectionID)
// pair: a display title plus the section's content payload. For generic
// sections the payload is the full section block; for fixed named fields
// it is the stored grouped data.
type ResolvedSection struct {
	Title      string          `json:"title"`
	SectionID  string          `json:"sectionId"`
	GlobalSlug string          `json:"globalSlug"`
	Content    json.RawMessage `json:"content"`
}

// Resolver resolves a page slug and section identifier to exactly one
// section's content, or fails with ErrNotFound.
type Resolver struct {
	store *store.Queries
	reg   *registry.Registry
}

// NewResolver builds a resolver over the given store and page registry.
func NewResolver(q *store.Queries, reg *registry.Registry) *Resolver {
	return &Resolver{store: q, reg: reg}
}

// Resolve looks up sectionID within the page addressed by pageSlug.
// Published dynamic pages are checked first, then the global registry.
// An empty payload resolves to ErrNotFound: a section that exists in the
// schema but holds no data is indistinguishable from one that does not
// exist.
func (r *Resolver) Resolve(ctx context.Context, pageSlug, sectionID string) (ResolvedSection, error) {
	dyn, err := r.store.GetPublishedDynamicPageBySlug(ctx, pageSlug)
	switch {
	case err == nil:
		return resolveGenericSection(pageSlug, dyn.Sections, sectionID)
	case !errors.Is(err, store.ErrNotFound):
		return ResolvedSection{}, fmt.Errorf("resolve %s: %w", pageSlug, err)
	}

	desc, ok := r.reg.Lookup(pageSlug)
	if !ok {
		return ResolvedSection{}, ErrNotFound
	}

	page, err := r.store.GetGlobalPage(ctx, pageSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ResolvedSection{}, ErrNotFound
		}
		return ResolvedSection{}, fmt.Errorf("resolve %s: %w", pageSlug, err)
	}
	if !page.IsActive {
		return ResolvedSection{}, ErrNotFound
	}

	if _, ok := ParseSectionIndex(sectionID); ok {
		return resolveGenericSection(pageSlug, page.Sections, sectionID)
	}
	return resolveFieldSection(desc, &page, sectionID)
}

// resolveGenericSection resolves sectionID against a generic sections
// array, matching a stable section ID first and falling back to
// "section-{index}" positional addressing.
func resolveGenericSection(pageSlug string, sections []model.Section, sectionID string) (ResolvedSection, error) {
	sec := findSection(sections, sectionID)
	if sec == nil || !sec.HasContent() {
		return ResolvedSection{}, ErrNotFound
	}

	payload, err := json.Marshal(sec)
	if err != nil {
		return ResolvedSection{}, fmt.Errorf("encode section %s: %w", sectionID, err)
	}

	return ResolvedSection{
		Title:      sec.Title,
		SectionID:  sectionID,
		GlobalSlug: pageSlug,
		Content:    payload,
	}, nil
}

// resolveFieldSection resolves sectionID as a fixed named field declared
// by the page kind's descriptor. The declared title wins; keys declared
// without one get a humanized fallback.
func resolveFieldSection(desc *registry.Descriptor, page *model.GlobalPage, sectionID string) (ResolvedSection, error) {
	fs, ok := desc.FieldSection(sectionID)
	if !ok {
		return ResolvedSection{}, ErrNotFound
	}
	if !page.FieldHasContent(fs.Key) {
		return ResolvedSection{}, ErrNotFound
	}

	return ResolvedSection{
		Title:      fs.DisplayTitle(),
		SectionID:  fs.Key,
		GlobalSlug: desc.Slug,
		Content:    page.Field(fs.Key),
	}, nil
}

func findSection(sections []model.Section, sectionID string) *model.Section {
	for i := range sections {
		if sections[i].ID != "" && sections[i].ID == sectionID {
			return &sections[i]
		}
	}
	if i, ok := ParseSectionIndex(sectionID); ok && i < len(sections) {
		return &sections[i]
	}
	return nil
}
