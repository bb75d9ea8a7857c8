// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package registry declares the closed set of global page kinds. Each kind
// carries one descriptor consumed identically by the section resolver and
// the listing component, so the slug-to-field mapping lives in exactly one
// place. Kinds are added by registration at startup, not by editing switch
// statements.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/campuscms/campuscms/internal/util"
)

// FieldSection describes one fixed named section of a global page kind:
// a stable key, a display title and its position among the page's generic
// sections. Title may be empty; consumers then humanize the key.
type FieldSection struct {
	Key   string
	Title string
	Type  string
	Order int
}

// DisplayTitle returns the declared title, falling back to the humanized key.
func (f FieldSection) DisplayTitle() string {
	if f.Title != "" {
		return f.Title
	}
	return util.HumanizeKey(f.Key)
}

// Descriptor declares a global page kind: its well-known slug, display
// title and the fixed named sections it owns beyond the generic array.
type Descriptor struct {
	Slug     string
	Title    string
	Sections []FieldSection
}

// FieldSection returns the fixed section declared under key.
func (d *Descriptor) FieldSection(key string) (FieldSection, bool) {
	for _, f := range d.Sections {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSection{}, false
}

// Registry holds the registered global page kinds.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]*Descriptor
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{kinds: make(map[string]*Descriptor)}
}

// Register adds a page kind. Registering a duplicate slug is a programming
// error and fails loudly at startup.
func (r *Registry) Register(d Descriptor) error {
	if !util.IsValidSlug(d.Slug) {
		return fmt.Errorf("registry: invalid global page slug %q", d.Slug)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[d.Slug]; exists {
		return fmt.Errorf("registry: global page %q already registered", d.Slug)
	}

	copied := d
	copied.Sections = append([]FieldSection(nil), d.Sections...)
	sort.SliceStable(copied.Sections, func(i, j int) bool {
		return copied.Sections[i].Order < copied.Sections[j].Order
	})

	r.kinds[d.Slug] = &copied
	r.order = append(r.order, d.Slug)
	return nil
}

// MustRegister is Register that panics, for static startup tables.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor for slug.
func (r *Registry) Lookup(slug string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.kinds[slug]
	return d, ok
}

// Slugs returns the registered slugs in registration order.
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}
