// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "About Us", "about-us"},
		{"accents", "Comité Académique", "comite-academique"},
		{"punctuation", "NAAC: Cycle 3 (2024)", "naac-cycle-3-2024"},
		{"multiple spaces", "International   Relations", "international-relations"},
		{"leading and trailing", "  Research  ", "research"},
		{"already a slug", "dvv-clarifications", "dvv-clarifications"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"about", true},
		{"iqac-minutes-2024", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"Upper", false},
		{"with space", false},
		{"with/slash", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestHumanizeKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"dvv-clarifications", "Dvv Clarifications"},
		{"profile", "Profile"},
		{"ssr", "Ssr"},
		{"best-practices", "Best Practices"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := HumanizeKey(tt.key); got != tt.want {
				t.Errorf("HumanizeKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
