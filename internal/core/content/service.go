// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"io"
	"log/slog"

	"github.com/taibuivan/tirtha/internal/core/sluggen"
	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/constants"
	"github.com/taibuivan/tirtha/internal/platform/dberr"
	"github.com/taibuivan/tirtha/internal/platform/sec"
	"github.com/taibuivan/tirtha/internal/platform/storage"
	"github.com/taibuivan/tirtha/internal/platform/validate"
	"github.com/taibuivan/tirtha/pkg/uuidv7"
)

const (
	maxTitleLen       = 300
	maxDescriptionLen = 5000
)

// # Service Layer

// Service orchestrates the business logic for the content hierarchy.
//
// Writes follow a fixed discipline: validate fields, consult the structural
// capability table, derive slug/ordinal, persist, and retry the whole
// derivation on a unique-constraint race (bounded by OrdinalRetryBudget).
type Service struct {
	contentRepo ContentRepository
	chapterRepo ChapterRepository
	sectionRepo SectionRepository
	objectStore storage.ObjectStore
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(
	contentRepo ContentRepository,
	chapterRepo ChapterRepository,
	sectionRepo SectionRepository,
	objectStore storage.ObjectStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		contentRepo: contentRepo,
		chapterRepo: chapterRepo,
		sectionRepo: sectionRepo,
		objectStore: objectStore,
		logger:      logger,
	}
}

// # Content Operations

/*
ListContent retrieves a filtered page of works.

Description: Anonymous and member callers see published works only unless
they explicitly filter otherwise; moderators and above may browse any status.

Parameters:
  - context: context.Context
  - filter: Filter (the Status field may be overridden by visibility rules)
  - viewerRole: sec.UserRole ("" for anonymous)
  - limit, offset: Pagination window

Returns:
  - []*Content: Matching page
  - int: Total matching works
  - error: Validation or storage errors
*/
func (service *Service) ListContent(context context.Context, filter Filter, viewerRole sec.UserRole, limit, offset int) ([]*Content, int, error) {

	// Visibility policy: unprivileged callers browse the published shelf.
	if !viewerRole.AtLeast(sec.RoleModerator) {
		filter.Status = StatusPublished
	}

	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, validate.RequiredError(FieldStatus, "Unknown status filter")
	}
	if filter.Format != "" && !filter.Format.IsValid() {
		return nil, 0, validate.RequiredError(FieldFormat, "Unknown format filter")
	}

	return service.contentRepo.List(context, filter, limit, offset)
}

/*
GetContent retrieves a single work by UUID or slug.

Description: A 36-character canonical UUID routes to the primary key lookup,
anything else is treated as a slug. Each successful read bumps the view
counter; counter failures are logged and swallowed so a metrics hiccup never
breaks the read path.

Returns:
  - *Content: The hydrated work
  - error: apperr.NotFound if missing or soft-deleted
*/
func (service *Service) GetContent(context context.Context, identifier string) (*Content, error) {
	var work *Content
	var err error

	if uuidv7.IsValid(identifier) {
		work, err = service.contentRepo.FindByID(context, identifier)
	} else {
		work, err = service.contentRepo.FindBySlug(context, identifier)
	}
	if err != nil {
		return nil, err
	}

	if err := service.contentRepo.IncrementViewCount(context, work.ID, 1); err != nil {
		service.logger.Warn("content_view_count_failed",
			slog.String("content_id", work.ID),
			slog.Any("error", err),
		)
	}

	return work, nil
}

/*
GetContentForEdit retrieves a work by ID for a write path.

Description: Unlike GetContent this never touches the view counter; an edit
is not a read.
*/
func (service *Service) GetContentForEdit(context context.Context, id string) (*Content, error) {
	return service.contentRepo.FindByID(context, id)
}

/*
CreateContent validates and persists a new work.

Description: The slug is derived from the title, never accepted from the
caller. A concurrent claim on the generated slug surfaces as SQLSTATE 23505
and triggers a bounded re-derivation.

Parameters:
  - context: context.Context
  - work: *Content (ID, Slug and timestamps are assigned here)

Returns:
  - error: Validation, structural or persistence errors
*/
func (service *Service) CreateContent(context context.Context, work *Content) error {

	// Identity & defaults
	if work.ID == "" {
		work.ID = uuidv7.New()
	}
	if work.Status == "" {
		work.Status = StatusDraft
	}

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, work.Title)
	validator.MaxLen(FieldTitle, work.Title, maxTitleLen)
	validator.MaxLen(FieldDescription, work.Description, maxDescriptionLen)
	validator.Required(FieldLanguage, work.Language)
	validator.Required(FieldAuthorID, work.AuthorID)
	validator.Custom(FieldFormat, !work.Format.IsValid(), "Must be one of: text, audio, video, pdf")
	validator.Custom(FieldStatus, !work.Status.IsValid(), "Must be one of: draft, pending_review, published, archived")

	if err := validator.Err(); err != nil {
		return err
	}

	// Slug derivation + persistence, retried on a losing race
	for attempt := 0; attempt < constants.OrdinalRetryBudget; attempt++ {
		slug, err := sluggen.Generate(context, service.contentRepo, work.Title, "")
		if err != nil {
			return err
		}
		work.Slug = slug

		err = service.contentRepo.Create(context, work)
		if err == nil {
			service.logger.Info("content_created",
				slog.String("content_id", work.ID),
				slog.String("slug", work.Slug),
				slog.String("format", string(work.Format)),
			)
			return nil
		}

		if !dberr.IsUniqueViolation(err) {
			return dberr.Wrap(err, "create content")
		}
	}

	return apperr.Conflict("Could not allocate a unique slug, please retry")
}

/*
UpdateContent validates and persists metadata changes.

Description: The slug is deliberately stable across updates so published
URLs never break; use RegenerateSlug for an explicit re-derivation. The
format is immutable: changing it would invalidate the existing hierarchy.

Returns:
  - error: Validation errors, or apperr.NotFound
*/
func (service *Service) UpdateContent(context context.Context, work *Content) error {

	validator := &validate.Validator{}
	validator.Required(FieldTitle, work.Title)
	validator.MaxLen(FieldTitle, work.Title, maxTitleLen)
	validator.MaxLen(FieldDescription, work.Description, maxDescriptionLen)
	validator.Required(FieldLanguage, work.Language)
	validator.Custom(FieldStatus, !work.Status.IsValid(), "Must be one of: draft, pending_review, published, archived")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.contentRepo.Update(context, work); err != nil {
		return err
	}

	service.logger.Info("content_updated",
		slog.String("content_id", work.ID),
		slog.String("status", string(work.Status)),
	)

	return nil
}

/*
RegenerateSlug re-derives a work's slug from its current title.

Description: The work's own row is excluded from the collision check, so an
unchanged title yields an unchanged slug.

Returns:
  - string: The new slug
  - error: apperr.NotFound, or Conflict past the retry budget
*/
func (service *Service) RegenerateSlug(context context.Context, id string) (string, error) {
	work, err := service.contentRepo.FindByID(context, id)
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < constants.OrdinalRetryBudget; attempt++ {
		slug, err := sluggen.Generate(context, service.contentRepo, work.Title, work.ID)
		if err != nil {
			return "", err
		}

		err = service.contentRepo.UpdateSlug(context, work.ID, slug)
		if err == nil {
			service.logger.Info("content_slug_regenerated",
				slog.String("content_id", work.ID),
				slog.String("old_slug", work.Slug),
				slog.String("new_slug", slug),
			)
			return slug, nil
		}

		if !dberr.IsUniqueViolation(err) {
			return "", dberr.Wrap(err, "regenerate slug")
		}
	}

	return "", apperr.Conflict("Could not allocate a unique slug, please retry")
}

/*
RemoveContent soft-deletes a work.

Description: Children are left untouched: they become unreachable through
the hidden parent, and a restore brings the whole hierarchy back intact.
*/
func (service *Service) RemoveContent(context context.Context, id string) error {
	if err := service.contentRepo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("content_removed", slog.String("content_id", id))
	return nil
}

/*
AttachFile uploads the work's binary payload and records its reference.

Description: PDF, audio and video works carry a single file. The object
store returns the public URL, which is stored verbatim together with the
byte size reported by the upload.

Parameters:
  - context: context.Context
  - id: string (Content UUID)
  - filename: string (Used for the storage key suffix)
  - reader: io.Reader (The payload stream)
  - size: int64 (Payload size in bytes)
  - contentType: string (MIME type)

Returns:
  - string: Stored file URL
  - error: apperr.NotFound, structural or storage errors
*/
func (service *Service) AttachFile(context context.Context, id, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	work, err := service.contentRepo.FindByID(context, id)
	if err != nil {
		return "", err
	}

	// Text works are composed of sections, not uploaded binaries.
	if work.Format == FormatText {
		return "", apperr.StructuralViolation("Text-format content does not carry an uploaded file")
	}

	key := "content/" + work.ID + "/" + filename
	fileURL, err := service.objectStore.Put(context, key, reader, size, contentType)
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := service.contentRepo.UpdateFile(context, work.ID, fileURL, size); err != nil {
		return "", err
	}

	service.logger.Info("content_file_attached",
		slog.String("content_id", work.ID),
		slog.String("file_url", fileURL),
		slog.Int64("file_size", size),
	)

	return fileURL, nil
}

/*
TableOfContents assembles the full reading structure of a work.

Description: Three queries total (work, chapters, sections) regardless of
book size; sections are grouped under their chapters in memory.

Returns:
  - *TableOfContents: Content with ordered chapters and nested sections
  - error: apperr.NotFound if the work is missing or soft-deleted
*/
func (service *Service) TableOfContents(context context.Context, id string) (*TableOfContents, error) {
	work, err := service.contentRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	chapters, err := service.chapterRepo.ListAllByContent(context, work.ID)
	if err != nil {
		return nil, err
	}

	toc := &TableOfContents{
		Content:  work,
		Chapters: make([]*TOCChapter, 0, len(chapters)),
	}

	byChapter := make(map[string]*TOCChapter, len(chapters))
	for _, chapter := range chapters {
		entry := &TOCChapter{Chapter: *chapter, Sections: []*Section{}}
		byChapter[chapter.ID] = entry
		toc.Chapters = append(toc.Chapters, entry)
	}

	// Only text works own sections; skip the join otherwise.
	if work.Format.Capabilities().AllowsSections {
		sections, err := service.sectionRepo.ListAllByContent(context, work.ID)
		if err != nil {
			return nil, err
		}
		for _, section := range sections {
			if entry, found := byChapter[section.ChapterID]; found {
				entry.Sections = append(entry.Sections, section)
			}
		}
	}

	return toc, nil
}
