// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content defines the core domain entities for the Tirtha library.

It manages the lifecycle of long-form spiritual works (text books, audiobooks,
video discourses, scanned PDFs) including their chapter hierarchy, ordered
text sections, and publication workflow.

Core Responsibility:

  - Hierarchy: Content → Chapter → Section, with the legal shape decided by
    the work's format (see format.go).
  - Addressing: Every work is reachable by UUID or by its unique slug.
  - Workflow: Draft → pending review → published → archived lifecycle.

This package acts as the source of truth for all content-related data models.
*/
package content

import "time"

// # Domain Enums

// Format classifies the physical nature of a work and determines its legal
// child structure. It is a closed set: every mutation path consults the
// capability table in format.go instead of switching on the raw value.
type Format string

const (
	// FormatText is a written work: chapters with ordered body-text sections.
	FormatText Format = "text"

	// FormatAudio is an audiobook or chanting recording: chapters that each
	// carry a media reference, with no sections.
	FormatAudio Format = "audio"

	// FormatVideo is a discourse or documentary: chapters with media
	// references, no sections.
	FormatVideo Format = "video"

	// FormatPDF is a single opaque scanned file with no chapters at all.
	FormatPDF Format = "pdf"
)

// IsValid reports whether f is a recognised [Format] value.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatAudio, FormatVideo, FormatPDF:
		return true
	}
	return false
}

// Status represents the publication state of a work.
type Status string

const (
	// StatusDraft is visible only to the owning author and staff.
	StatusDraft Status = "draft"

	// StatusPendingReview awaits moderator approval.
	StatusPendingReview Status = "pending_review"

	// StatusPublished is publicly listed and readable.
	StatusPublished Status = "published"

	// StatusArchived is retained but hidden from default listings.
	StatusArchived Status = "archived"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// # Core Entities

// Content is the central aggregate of the Tirtha domain.
// It represents a single publishable work in the library.
type Content struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"` // URL-safe identifier, unique among live works
	Description string  `json:"description"`
	Format      Format  `json:"format"`
	Status      Status  `json:"status"`
	Language    string  `json:"language"` // BCP-47 language tag (e.g. "sa", "hi", "en")
	AuthorID    string  `json:"author_id"`
	CategoryID  *string `json:"category_id,omitempty"`
	TempleID    *string `json:"temple_id,omitempty"` // Originating temple, when applicable

	// Binary payload reference, populated by the storage collaborator for
	// PDF/audio/video works. Stored verbatim; never derived.
	FileURL  string `json:"file_url,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`

	// Updated atomically on the read path; not part of any update payload.
	ViewCount int64 `json:"view_count"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // nil = active; non-nil = soft-deleted
}

// Chapter is an ordered, numbered subdivision of a [Content].
//
// ChapterNumber is assigned by the service (max sibling + 1, starting at 1)
// and is never accepted from callers.
type Chapter struct {
	ID            string `json:"id"`
	ContentID     string `json:"content_id"`
	ChapterNumber int    `json:"chapter_number"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Description   string `json:"description,omitempty"`

	// Media reference: required for audio/video works, ignored for text.
	MediaURL     string `json:"media_url,omitempty"`
	DurationSecs *int   `json:"duration_secs,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Section holds one unit of reading under a text-format work's chapter.
//
// SectionOrder is assigned by the service (max sibling + 1, first section
// gets 0) and is never accepted from callers.
type Section struct {
	ID           string `json:"id"`
	ChapterID    string `json:"chapter_id"`
	SectionOrder int    `json:"section_order"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Body         string `json:"body"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// # Composite Views

// TOCChapter is a chapter with its ordered sections, used by the
// table-of-contents view.
type TOCChapter struct {
	Chapter
	Sections []*Section `json:"sections"`
}

// TableOfContents is the full reading structure of one work.
type TableOfContents struct {
	Content  *Content      `json:"content"`
	Chapters []*TOCChapter `json:"chapters"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered content list query.
// All fields are equality filters except Query, which matches title and
// description substrings case-insensitively.
type Filter struct {
	CategoryID string `json:"category_id,omitempty"`
	TempleID   string `json:"temple_id,omitempty"`
	Language   string `json:"language,omitempty"`
	Status     Status `json:"status,omitempty"`
	Format     Format `json:"format,omitempty"`
	AuthorID   string `json:"author_id,omitempty"`
	Query      string `json:"q,omitempty"`
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldFormat      = "format"
	FieldStatus      = "status"
	FieldLanguage    = "language"
	FieldAuthorID    = "author_id"
	FieldCategoryID  = "category_id"
	FieldTempleID    = "temple_id"
	FieldFileURL     = "file_url"
)

// Field identifiers for the [Chapter] and [Section] hierarchy.
const (
	FieldContentID     = "content_id"
	FieldChapterID     = "chapter_id"
	FieldChapterNumber = "chapter_number"
	FieldSectionOrder  = "section_order"
	FieldMediaURL      = "media_url"
	FieldBody          = "body"
)
