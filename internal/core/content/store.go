// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import "context"

// # Content Data Access

// ContentRepository defines the data access contract for the content aggregate.
//
// All read methods are soft-delete aware: a soft-deleted row behaves exactly
// like an absent one and surfaces as NotFound.
type ContentRepository interface {

	/*
		List returns works matching the filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter (equality filters + substring query)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Content: Matching page of works
		  - int: Total matching works under the same filter
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Content, int, error)

	/*
		FindByID returns the live work with the given UUID.

		Returns:
		  - *Content: Hydrated entity
		  - error: apperr.NotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Content, error)

	/*
		FindBySlug returns the live work with the given slug.

		Returns:
		  - *Content: Hydrated entity
		  - error: apperr.NotFound if missing or soft-deleted
	*/
	FindBySlug(context context.Context, slug string) (*Content, error)

	/*
		Create persists a new work. ID, slug and timestamps must already be set.

		Returns:
		  - error: Storage failure; unique-violation errors pass through
		    unclassified so the service can retry slug generation
	*/
	Create(context context.Context, content *Content) error

	/*
		Update persists metadata changes to an existing live work.
		The slug is deliberately NOT part of the update set.

		Returns:
		  - error: apperr.NotFound if the row is missing or soft-deleted
	*/
	Update(context context.Context, content *Content) error

	/*
		UpdateSlug replaces only the slug of a live work.

		Returns:
		  - error: apperr.NotFound, or a unique violation on collision
	*/
	UpdateSlug(context context.Context, id string, slug string) error

	/*
		UpdateFile stores the binary payload reference returned by the
		object storage collaborator.

		Returns:
		  - error: apperr.NotFound if the row is missing or soft-deleted
	*/
	UpdateFile(context context.Context, id string, fileURL string, fileSize int64) error

	/*
		SoftDelete hides a work without physical row removal. Its slug
		becomes reclaimable immediately.

		Returns:
		  - error: apperr.NotFound if already deleted or missing
	*/
	SoftDelete(context context.Context, id string) error

	/*
		SlugExists reports whether a live work other than excludeID holds
		the slug. Pass excludeID "" for creates.
	*/
	SlugExists(context context.Context, slug string, excludeID string) (bool, error)

	/*
		IncrementViewCount atomically bumps the view counter.
	*/
	IncrementViewCount(context context.Context, id string, delta int64) error
}

// # Chapter Data Access

// ChapterRepository defines the data access contract for chapters.
type ChapterRepository interface {

	/*
		ListByContent returns live chapters of a work ordered by chapter
		number ascending.

		Returns:
		  - []*Chapter: Matching page
		  - int: Total live chapters of the work
		  - error: Storage failures
	*/
	ListByContent(context context.Context, contentID string, limit, offset int) ([]*Chapter, int, error)

	/*
		ListAllByContent returns every live chapter of a work ordered by
		chapter number ascending, without pagination. Used by the
		table-of-contents view.
	*/
	ListAllByContent(context context.Context, contentID string) ([]*Chapter, error)

	/*
		FindByID returns the live chapter with the given UUID.

		Returns:
		  - *Chapter: Hydrated entity
		  - error: apperr.NotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		NextChapterNumber derives max(chapter_number)+1 over live siblings,
		returning 1 when the work has no chapters.

		The value is advisory: the UNIQUE(content_id, chapter_number) index
		is the actual guarantee, and the service retries on violation.
	*/
	NextChapterNumber(context context.Context, contentID string) (int, error)

	/*
		Create persists a new chapter. Unique-violation errors pass through
		unclassified so the service can re-derive the ordinal and retry.
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		Update persists changes to chapter metadata. The chapter number is
		deliberately NOT part of the update set.

		Returns:
		  - error: apperr.NotFound if missing or soft-deleted
	*/
	Update(context context.Context, chapter *Chapter) error

	/*
		SoftDeleteCascade hides a chapter AND all of its live sections in
		one transaction. Remaining sibling numbers keep their gaps.

		Returns:
		  - error: apperr.NotFound if the chapter is missing or deleted
	*/
	SoftDeleteCascade(context context.Context, id string) error

	/*
		SlugExists reports whether a live chapter other than excludeID
		holds the slug.
	*/
	SlugExists(context context.Context, slug string, excludeID string) (bool, error)
}

// # Section Data Access

// SectionRepository defines the data access contract for sections.
type SectionRepository interface {

	/*
		ListByChapter returns live sections of a chapter ordered by section
		order ascending.

		Returns:
		  - []*Section: Matching page
		  - int: Total live sections of the chapter
		  - error: Storage failures
	*/
	ListByChapter(context context.Context, chapterID string, limit, offset int) ([]*Section, int, error)

	/*
		ListAllByContent returns every live section under a work's live
		chapters, ordered by chapter number then section order. Used by the
		table-of-contents view to avoid per-chapter round-trips.
	*/
	ListAllByContent(context context.Context, contentID string) ([]*Section, error)

	/*
		FindByID returns the live section with the given UUID.

		Returns:
		  - *Section: Hydrated entity
		  - error: apperr.NotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Section, error)

	/*
		NextSectionOrder derives max(section_order)+1 over live siblings,
		returning 0 when the chapter has no sections.

		Advisory only; UNIQUE(chapter_id, section_order) plus service-level
		retry provides the real guarantee.
	*/
	NextSectionOrder(context context.Context, chapterID string) (int, error)

	/*
		Create persists a new section. Unique-violation errors pass through
		unclassified so the service can re-derive the ordinal and retry.
	*/
	Create(context context.Context, section *Section) error

	/*
		Update persists changes to section metadata and body. The section
		order is deliberately NOT part of the update set.

		Returns:
		  - error: apperr.NotFound if missing or soft-deleted
	*/
	Update(context context.Context, section *Section) error

	/*
		SoftDelete hides a section without physical row removal.

		Returns:
		  - error: apperr.NotFound if missing or already deleted
	*/
	SoftDelete(context context.Context, id string) error

	/*
		SlugExists reports whether a live section other than excludeID
		holds the slug.
	*/
	SlugExists(context context.Context, slug string, excludeID string) (bool, error)
}
