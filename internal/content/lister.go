// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/registry"
	"github.com/campuscms/campuscms/internal/store"
)

// PageSections is the navigation listing of one page.
type PageSections struct {
	Title    string                 `json:"title"`
	Slug     string                 `json:"slug"`
	IsActive bool                   `json:"isActive"`
	Sections []model.SectionSummary `json:"sections"`
}

// DynamicPageList is one page of the published dynamic page listing.
type DynamicPageList struct {
	Pages      []model.DynamicPage `json:"pages"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"totalPages"`
}

// Lister builds ordered section summaries and page listings. Listings are
// read-mostly, so results go through an optional cache invalidated on
// mutation.
type Lister struct {
	store *store.Queries
	reg   *registry.Registry
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewLister builds a lister. The cache may be nil to disable caching.
func NewLister(q *store.Queries, reg *registry.Registry, c cache.Cache, ttl time.Duration, log *slog.Logger) *Lister {
	if log == nil {
		log = slog.Default()
	}
	return &Lister{store: q, reg: reg, cache: c, ttl: ttl, log: log}
}

// Sections lists the section summaries of the page addressed by slug,
// filtered to populated sections and sorted ascending by order. Published
// dynamic pages shadow global pages of the same slug.
func (l *Lister) Sections(ctx context.Context, pageSlug string) (PageSections, error) {
	dyn, err := l.store.GetPublishedDynamicPageBySlug(ctx, pageSlug)
	switch {
	case err == nil:
		return PageSections{
			Title:    dyn.Title,
			Slug:     dyn.Slug,
			IsActive: true,
			Sections: summarizeGeneric(dyn.Sections, true),
		}, nil
	case !errors.Is(err, store.ErrNotFound):
		return PageSections{}, fmt.Errorf("list sections %s: %w", pageSlug, err)
	}

	desc, ok := l.reg.Lookup(pageSlug)
	if !ok {
		return PageSections{}, ErrNotFound
	}

	page, err := l.store.GetGlobalPage(ctx, pageSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PageSections{}, ErrNotFound
		}
		return PageSections{}, fmt.Errorf("list sections %s: %w", pageSlug, err)
	}
	if !page.IsActive {
		return PageSections{}, ErrNotFound
	}

	summaries := summarizeGeneric(page.Sections, false)
	for _, fs := range desc.Sections {
		if !page.FieldHasContent(fs.Key) {
			continue
		}
		summaries = append(summaries, model.SectionSummary{
			ID:         fs.Key,
			Title:      fs.DisplayTitle(),
			Type:       fs.Type,
			Order:      fs.Order,
			IsActive:   true,
			HasContent: true,
		})
	}
	sortSummaries(summaries)

	title := page.Title
	if title == "" {
		title = desc.Title
	}
	return PageSections{
		Title:    title,
		Slug:     page.Slug,
		IsActive: page.IsActive,
		Sections: summaries,
	}, nil
}

// summarizeGeneric projects a generic sections array into summaries,
// dropping rows without content. Dynamic pages keep their stable section
// IDs; global pages always address generically by position.
func summarizeGeneric(sections []model.Section, keepIDs bool) []model.SectionSummary {
	summaries := make([]model.SectionSummary, 0, len(sections))
	for i := range sections {
		s := &sections[i]
		if !s.HasContent() {
			continue
		}
		sum := model.Summarize(s)
		if !keepIDs || sum.ID == "" {
			sum.ID = SectionIndexID(i)
		}
		summaries = append(summaries, sum)
	}
	sortSummaries(summaries)
	return summaries
}

func sortSummaries(summaries []model.SectionSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Order < summaries[j].Order
	})
}

// GlobalPages enumerates the registered global pages with their status.
// A page whose row fails to load is reported inactive, never as an error.
func (l *Lister) GlobalPages(ctx context.Context) ([]model.GlobalPageInfo, error) {
	key := cache.KeyGlobalPageList()
	if infos, ok := fromCache[[]model.GlobalPageInfo](ctx, l, key); ok {
		return infos, nil
	}

	slugs := l.reg.Slugs()
	infos := make([]model.GlobalPageInfo, 0, len(slugs))
	for _, slug := range slugs {
		desc, _ := l.reg.Lookup(slug)
		info := model.GlobalPageInfo{Slug: slug, Title: desc.Title}

		page, err := l.store.GetGlobalPage(ctx, slug)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				l.log.Warn("global page load failed", "slug", slug, "error", err)
			}
			infos = append(infos, info)
			continue
		}

		if page.Title != "" {
			info.Title = page.Title
		}
		info.IsActive = page.IsActive
		infos = append(infos, info)
	}

	l.toCache(ctx, key, infos)
	return infos, nil
}

// DynamicPages lists published dynamic pages, newest priority first,
// optionally filtered by category. page is 1-based.
func (l *Lister) DynamicPages(ctx context.Context, category string, limit, page int) (DynamicPageList, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	key := cache.KeyDynamicPageList(category, limit, offset)
	if list, ok := fromCache[DynamicPageList](ctx, l, key); ok {
		return list, nil
	}

	pages, err := l.store.ListPublishedDynamicPages(ctx, store.ListPublishedDynamicPagesParams{
		Category: category,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return DynamicPageList{}, fmt.Errorf("list dynamic pages: %w", err)
	}

	total, err := l.store.CountPublishedDynamicPages(ctx, category)
	if err != nil {
		return DynamicPageList{}, fmt.Errorf("count dynamic pages: %w", err)
	}

	list := DynamicPageList{
		Pages:      pages,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	l.toCache(ctx, key, list)
	return list, nil
}

// DepartmentNav lists active departments for navigation.
func (l *Lister) DepartmentNav(ctx context.Context) ([]model.DepartmentNavEntry, error) {
	key := cache.KeyDepartmentNav()
	if entries, ok := fromCache[[]model.DepartmentNavEntry](ctx, l, key); ok {
		return entries, nil
	}

	entries, err := l.store.ListActiveDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}

	l.toCache(ctx, key, entries)
	return entries, nil
}

// InvalidateDynamicPages drops all cached dynamic page listings.
func (l *Lister) InvalidateDynamicPages(ctx context.Context) {
	l.invalidate(ctx, cache.PrefixDynamicPages)
}

// InvalidateGlobalPages drops the cached global page listing.
func (l *Lister) InvalidateGlobalPages(ctx context.Context) {
	l.invalidate(ctx, cache.PrefixGlobalPages)
}

// InvalidateDepartments drops the cached department navigation.
func (l *Lister) InvalidateDepartments(ctx context.Context) {
	l.invalidate(ctx, cache.PrefixDepartments)
}

func (l *Lister) invalidate(ctx context.Context, prefix string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.DeletePrefix(ctx, prefix); err != nil {
		l.log.Warn("cache invalidation failed", "prefix", prefix, "error", err)
	}
}

// fromCache loads and decodes a cached listing. Cache failures degrade to
// a miss.
func fromCache[T any](ctx context.Context, l *Lister, key string) (T, bool) {
	var zero T
	if l.cache == nil {
		return zero, false
	}

	raw, err := l.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.log.Warn("cache get failed", "key", key, "error", err)
		}
		return zero, false
	}

	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		l.log.Warn("cache decode failed", "key", key, "error", err)
		return zero, false
	}
	return val, true
}

func (l *Lister) toCache(ctx context.Context, key string, val any) {
	if l.cache == nil {
		return
	}

	raw, err := json.Marshal(val)
	if err != nil {
		l.log.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := l.cache.Set(ctx, key, raw, l.ttl); err != nil {
		l.log.Warn("cache set failed", "key", key, "error", err)
	}
}
