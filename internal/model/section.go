// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

// Section content types.
const (
	SectionRichText     = "richText"
	SectionTable        = "table"
	SectionDynamicTable = "dynamicTable"
	SectionMixed        = "mixed"
	SectionMixedDynamic = "mixedDynamic"
)

// ErrUnknownSectionType is returned when a section declares a content type
// outside the closed set.
var ErrUnknownSectionType = errors.New("unknown section content type")

// RichText is an opaque rich-text document blob. The core never interprets
// its structure beyond emptiness checks.
type RichText json.RawMessage

// IsEmpty reports whether the document carries no content.
func (r RichText) IsEmpty() bool {
	switch string(r) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (r RichText) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RichText) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// LinkRow is one entry of a static link table.
type LinkRow struct {
	Label      string `json:"label"`
	Link       string `json:"link"`
	IsExternal bool   `json:"isExternal"`
}

// Column describes one column of a dynamic table.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Width string `json:"width,omitempty"`
}

// Row holds one dynamic table row. Keys should match declared column keys;
// unknown keys are ignorable and missing keys render as empty.
type Row struct {
	Data map[string]any `json:"data"`
}

// DynamicTable is a self-describing tabular payload.
type DynamicTable struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Variant string   `json:"variant,omitempty"`
}

// IsEmpty reports whether the table declares no columns.
func (t DynamicTable) IsEmpty() bool {
	return len(t.Columns) == 0
}

// SectionContent is the closed set of payload variants a section may hold.
// Exactly one variant matches each content type.
type SectionContent interface {
	ContentType() string
	IsEmpty() bool
}

// RichTextContent is the payload of a richText section.
type RichTextContent struct {
	Body RichText
}

// ContentType implements SectionContent.
func (c RichTextContent) ContentType() string { return SectionRichText }

// IsEmpty implements SectionContent.
func (c RichTextContent) IsEmpty() bool { return c.Body.IsEmpty() }

// TableContent is the payload of a table section: an ordered link list.
type TableContent struct {
	Rows []LinkRow
}

// ContentType implements SectionContent.
func (c TableContent) ContentType() string { return SectionTable }

// IsEmpty implements SectionContent.
func (c TableContent) IsEmpty() bool { return len(c.Rows) == 0 }

// DynamicTableContent is the payload of a dynamicTable section.
type DynamicTableContent struct {
	Table DynamicTable
}

// ContentType implements SectionContent.
func (c DynamicTableContent) ContentType() string { return SectionDynamicTable }

// IsEmpty implements SectionContent.
func (c DynamicTableContent) IsEmpty() bool { return c.Table.IsEmpty() }

// MixedContent is the payload of a mixed section: rich text plus a link table.
type MixedContent struct {
	Body RichText
	Rows []LinkRow
}

// ContentType implements SectionContent.
func (c MixedContent) ContentType() string { return SectionMixed }

// IsEmpty implements SectionContent.
func (c MixedContent) IsEmpty() bool { return c.Body.IsEmpty() && len(c.Rows) == 0 }

// MixedDynamicContent is the payload of a mixedDynamic section.
type MixedDynamicContent struct {
	Body  RichText
	Table DynamicTable
}

// ContentType implements SectionContent.
func (c MixedDynamicContent) ContentType() string { return SectionMixedDynamic }

// IsEmpty implements SectionContent.
func (c MixedDynamicContent) IsEmpty() bool { return c.Body.IsEmpty() && c.Table.IsEmpty() }

// Section is an ordered, independently typed content block of a page.
type Section struct {
	ID       string
	Title    string
	Type     string
	Order    int
	IsActive bool
	Content  SectionContent
}

// HasContent reports whether the section's payload carries data.
// Derived on every call, never persisted.
func (s *Section) HasContent() bool {
	return s.Content != nil && !s.Content.IsEmpty()
}

// Validate enforces payload/type agreement for a proposed section write.
// Fields not matching the declared type are permitted to be absent or stale;
// the one matching field must be populated.
func (s *Section) Validate() error {
	if s.Content == nil {
		return fmt.Errorf("section %q: missing %s payload", s.Title, s.Type)
	}
	if s.Content.ContentType() != s.Type {
		return fmt.Errorf("section %q: payload is %s, declared %s",
			s.Title, s.Content.ContentType(), s.Type)
	}

	switch c := s.Content.(type) {
	case RichTextContent:
		if c.Body.IsEmpty() {
			return fmt.Errorf("section %q: empty rich text document", s.Title)
		}
	case TableContent:
		if len(c.Rows) == 0 {
			return fmt.Errorf("section %q: table requires at least one row", s.Title)
		}
	case DynamicTableContent:
		if len(c.Table.Columns) == 0 {
			return fmt.Errorf("section %q: dynamic table requires at least one column", s.Title)
		}
		if c.Table.Rows == nil {
			return fmt.Errorf("section %q: dynamic table requires a rows list", s.Title)
		}
	case MixedContent:
		if c.Body.IsEmpty() {
			return fmt.Errorf("section %q: mixed section requires a rich text document", s.Title)
		}
		if len(c.Rows) == 0 {
			return fmt.Errorf("section %q: mixed section requires table rows", s.Title)
		}
	case MixedDynamicContent:
		if c.Body.IsEmpty() {
			return fmt.Errorf("section %q: mixed section requires a rich text document", s.Title)
		}
		if len(c.Table.Columns) == 0 {
			return fmt.Errorf("section %q: mixed section requires a dynamic table", s.Title)
		}
	}
	return nil
}

// sectionEnvelope is the flat wire shape of a section. Only the payload
// fields matching contentType are read back; the rest are ignored even
// when populated.
type sectionEnvelope struct {
	ID                 string          `json:"id,omitempty"`
	Title              string          `json:"title"`
	ContentType        string          `json:"contentType"`
	Order              int             `json:"order"`
	IsActive           bool            `json:"isActive"`
	Content            RichText      `json:"content,omitempty"`
	TableData          []LinkRow     `json:"tableData,omitempty"`
	DynamicTableConfig *DynamicTable `json:"dynamicTableConfig,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s Section) MarshalJSON() ([]byte, error) {
	env := sectionEnvelope{
		ID:          s.ID,
		Title:       s.Title,
		ContentType: s.Type,
		Order:       s.Order,
		IsActive:    s.IsActive,
	}

	switch c := s.Content.(type) {
	case nil:
	case RichTextContent:
		env.Content = c.Body
	case TableContent:
		env.TableData = c.Rows
	case DynamicTableContent:
		t := c.Table
		env.DynamicTableConfig = &t
	case MixedContent:
		env.Content = c.Body
		env.TableData = c.Rows
	case MixedDynamicContent:
		t := c.Table
		env.Content = c.Body
		env.DynamicTableConfig = &t
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownSectionType, s.Content)
	}

	return json.Marshal(env)
}

// UnmarshalJSON implements json.Unmarshaler. The payload variant is picked
// by contentType; mismatched payload fields are dropped.
func (s *Section) UnmarshalJSON(data []byte) error {
	var env sectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	s.ID = env.ID
	s.Title = env.Title
	s.Type = env.ContentType
	s.Order = env.Order
	s.IsActive = env.IsActive

	var table DynamicTable
	if env.DynamicTableConfig != nil {
		table = *env.DynamicTableConfig
	}

	switch env.ContentType {
	case SectionRichText:
		s.Content = RichTextContent{Body: env.Content}
	case SectionTable:
		s.Content = TableContent{Rows: env.TableData}
	case SectionDynamicTable:
		s.Content = DynamicTableContent{Table: table}
	case SectionMixed:
		s.Content = MixedContent{Body: env.Content, Rows: env.TableData}
	case SectionMixedDynamic:
		s.Content = MixedDynamicContent{Body: env.Content, Table: table}
	case "":
		s.Content = nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSectionType, env.ContentType)
	}

	return nil
}

// SectionSummary is a derived projection of a section for navigation
// listings. Never persisted.
type SectionSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Order      int    `json:"order"`
	IsActive   bool   `json:"isActive"`
	HasContent bool   `json:"hasContent"`
}

// Summarize projects a section into its listing form.
func Summarize(s *Section) SectionSummary {
	return SectionSummary{
		ID:         s.ID,
		Title:      s.Title,
		Type:       s.Type,
		Order:      s.Order,
		IsActive:   s.IsActive,
		HasContent: s.HasContent(),
	}
}

// richTextSanitizer strips unsafe markup from HTML rich-text bodies.
var richTextSanitizer = bluemonday.UGCPolicy()

// SanitizeRichText sanitizes a rich-text blob when it is a JSON-encoded HTML
// string. Structured document trees pass through untouched; the core treats
// them as opaque.
func SanitizeRichText(r RichText) RichText {
	var html string
	if err := json.Unmarshal(r, &html); err != nil {
		return r
	}
	clean, err := json.Marshal(richTextSanitizer.Sanitize(html))
	if err != nil {
		return r
	}
	return RichText(clean)
}
