// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package registry

import (
	"testing"

	"github.com/campuscms/campuscms/internal/model"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	r.MustRegister(Descriptor{
		Slug:  "about",
		Title: "About",
		Sections: []FieldSection{
			{Key: "vision", Title: "Vision", Type: model.SectionRichText, Order: 20},
			{Key: "profile", Title: "Profile", Type: model.SectionRichText, Order: 10},
		},
	})

	d, ok := r.Lookup("about")
	if !ok {
		t.Fatal("about should resolve")
	}
	if d.Title != "About" {
		t.Errorf("Title = %q", d.Title)
	}

	// Sections are kept sorted by order.
	if d.Sections[0].Key != "profile" || d.Sections[1].Key != "vision" {
		t.Errorf("sections not ordered: %+v", d.Sections)
	}

	if _, ok := r.Lookup("nonexistent"); ok {
		t.Error("unknown slug must not resolve")
	}
}

func TestRegisterRejectsDuplicatesAndBadSlugs(t *testing.T) {
	r := New()
	if err := r.Register(Descriptor{Slug: "naac"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(Descriptor{Slug: "naac"}); err == nil {
		t.Error("duplicate slug should fail")
	}
	if err := r.Register(Descriptor{Slug: "Not A Slug"}); err == nil {
		t.Error("invalid slug should fail")
	}
}

func TestFieldSectionDisplayTitle(t *testing.T) {
	withTitle := FieldSection{Key: "ssr", Title: "SSR"}
	if got := withTitle.DisplayTitle(); got != "SSR" {
		t.Errorf("DisplayTitle = %q, want SSR", got)
	}

	// Without an explicit title the key is humanized.
	bare := FieldSection{Key: "dvv-clarifications"}
	if got := bare.DisplayTitle(); got != "Dvv Clarifications" {
		t.Errorf("DisplayTitle = %q, want Dvv Clarifications", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	slugs := r.Slugs()
	if len(slugs) == 0 {
		t.Fatal("default registry is empty")
	}
	for _, slug := range []string{"about", "naac", "research", "iqac"} {
		if _, ok := r.Lookup(slug); !ok {
			t.Errorf("expected global page kind %q", slug)
		}
	}

	naac, _ := r.Lookup("naac")
	if _, ok := naac.FieldSection("dvv-clarifications"); !ok {
		t.Error("naac should declare dvv-clarifications")
	}
}
