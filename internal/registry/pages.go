// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package registry

import "github.com/campuscms/campuscms/internal/model"

// Default declares the institutional global page kinds. The listing
// endpoint enumerates exactly these slugs; a slug absent here cannot
// resolve as a global page.
func Default() *Registry {
	r := New()

	r.MustRegister(Descriptor{
		Slug:  "about",
		Title: "About",
		Sections: []FieldSection{
			{Key: "profile", Title: "Profile", Type: model.SectionRichText, Order: 10},
			{Key: "vision-mission", Type: model.SectionRichText, Order: 20},
			{Key: "governing-body", Type: model.SectionDynamicTable, Order: 30},
			{Key: "organogram", Type: model.SectionRichText, Order: 40},
		},
	})

	r.MustRegister(Descriptor{
		Slug:  "naac",
		Title: "NAAC",
		Sections: []FieldSection{
			{Key: "ssr", Title: "SSR", Type: model.SectionTable, Order: 10},
			{Key: "dvv-clarifications", Type: model.SectionTable, Order: 20},
			{Key: "iiqa", Title: "IIQA", Type: model.SectionTable, Order: 30},
			{Key: "best-practices", Type: model.SectionRichText, Order: 40},
		},
	})

	r.MustRegister(Descriptor{
		Slug:  "research",
		Title: "Research",
		Sections: []FieldSection{
			{Key: "publications", Type: model.SectionDynamicTable, Order: 10},
			{Key: "projects", Type: model.SectionDynamicTable, Order: 20},
			{Key: "ethics-committee", Type: model.SectionRichText, Order: 30},
		},
	})

	r.MustRegister(Descriptor{
		Slug:  "placement",
		Title: "Placement",
		Sections: []FieldSection{
			{Key: "about-cell", Title: "About the Cell", Type: model.SectionRichText, Order: 10},
			{Key: "recruiters", Type: model.SectionDynamicTable, Order: 20},
			{Key: "statistics", Type: model.SectionDynamicTable, Order: 30},
		},
	})

	r.MustRegister(Descriptor{
		Slug:  "admissions",
		Title: "Admissions",
		Sections: []FieldSection{
			{Key: "procedure", Type: model.SectionRichText, Order: 10},
			{Key: "eligibility", Type: model.SectionRichText, Order: 20},
			{Key: "fee-structure", Type: model.SectionDynamicTable, Order: 30},
			{Key: "prospectus", Type: model.SectionTable, Order: 40},
		},
	})

	r.MustRegister(Descriptor{
		Slug:  "iqac",
		Title: "IQAC",
		Sections: []FieldSection{
			{Key: "composition", Type: model.SectionDynamicTable, Order: 10},
			{Key: "minutes", Type: model.SectionTable, Order: 20},
			{Key: "aqar", Title: "AQAR", Type: model.SectionTable, Order: 30},
		},
	})

	r.MustRegister(Descriptor{
		Slug:  "international",
		Title: "International Relations",
		Sections: []FieldSection{
			{Key: "collaborations", Type: model.SectionDynamicTable, Order: 10},
			{Key: "mou", Title: "MoU", Type: model.SectionTable, Order: 20},
		},
	})

	r.MustRegister(Descriptor{
		Slug:  "examinations",
		Title: "Examinations",
		Sections: []FieldSection{
			{Key: "notifications", Type: model.SectionTable, Order: 10},
			{Key: "results", Type: model.SectionTable, Order: 20},
			{Key: "revaluation", Type: model.SectionRichText, Order: 30},
		},
	})

	r.MustRegister(Descriptor{
		Slug:  "regulations",
		Title: "Regulations",
		Sections: []FieldSection{
			{Key: "academic", Type: model.SectionTable, Order: 10},
			{Key: "conduct", Type: model.SectionRichText, Order: 20},
		},
	})

	return r
}
