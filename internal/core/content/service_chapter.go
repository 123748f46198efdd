// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tirtha/internal/core/sluggen"
	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/constants"
	"github.com/taibuivan/tirtha/internal/platform/dberr"
	"github.com/taibuivan/tirtha/internal/platform/validate"
	"github.com/taibuivan/tirtha/pkg/uuidv7"
)

// # Chapter Operations

/*
ListChapters retrieves a page of a work's chapters.

Description: The parent is loaded first so a request against a missing or
soft-deleted work reports NotFound instead of an empty page.

Returns:
  - []*Chapter: Matching page, ordered by chapter number
  - int: Total live chapters
  - error: apperr.NotFound or storage errors
*/
func (service *Service) ListChapters(context context.Context, contentID string, limit, offset int) ([]*Chapter, int, error) {
	if _, err := service.contentRepo.FindByID(context, contentID); err != nil {
		return nil, 0, err
	}

	return service.chapterRepo.ListByContent(context, contentID, limit, offset)
}

/*
GetChapter retrieves a single chapter by UUID.
*/
func (service *Service) GetChapter(context context.Context, id string) (*Chapter, error) {
	return service.chapterRepo.FindByID(context, id)
}

/*
CreateChapter validates, numbers and persists a new chapter.

Description: The write pipeline is strictly ordered — the structural check
runs before any ordinal is derived, so a rejected request never consumes a
chapter number. The number and slug are derived together and re-derived on a
unique-violation race, up to the retry budget.

Parameters:
  - context: context.Context
  - chapter: *Chapter (ContentID and metadata set; ID/number/slug assigned here)

Returns:
  - error: StructuralViolation, validation, NotFound or Conflict errors
*/
func (service *Service) CreateChapter(context context.Context, chapter *Chapter) error {

	// Parent must exist and be live.
	parent, err := service.contentRepo.FindByID(context, chapter.ContentID)
	if err != nil {
		return err
	}

	// Structural check FIRST: no ordinal is consumed for an illegal write.
	if err := ValidateChapterWrite(parent.Format, chapter.MediaURL); err != nil {
		return err
	}

	// Media fields on text chapters are ignored, not errors.
	if !parent.Format.Capabilities().RequiresChapterMedia {
		chapter.MediaURL = ""
		chapter.DurationSecs = nil
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title)
	validator.MaxLen(FieldTitle, chapter.Title, maxTitleLen)
	validator.MaxLen(FieldDescription, chapter.Description, maxDescriptionLen)

	if err := validator.Err(); err != nil {
		return err
	}

	if chapter.ID == "" {
		chapter.ID = uuidv7.New()
	}

	// Ordinal + slug derivation, retried as one unit on a losing race.
	for attempt := 0; attempt < constants.OrdinalRetryBudget; attempt++ {
		number, err := service.chapterRepo.NextChapterNumber(context, chapter.ContentID)
		if err != nil {
			return err
		}
		chapter.ChapterNumber = number

		slug, err := sluggen.Generate(context, chapterSlugChecker{service.chapterRepo}, chapter.Title, "")
		if err != nil {
			return err
		}
		chapter.Slug = slug

		err = service.chapterRepo.Create(context, chapter)
		if err == nil {
			service.logger.Info("chapter_created",
				slog.String("chapter_id", chapter.ID),
				slog.String("content_id", chapter.ContentID),
				slog.Int("chapter_number", chapter.ChapterNumber),
			)
			return nil
		}

		if !dberr.IsUniqueViolation(err) {
			return dberr.Wrap(err, "create chapter")
		}
	}

	return apperr.Conflict("Could not allocate a chapter number, please retry")
}

/*
UpdateChapter validates and persists chapter metadata changes.

Description: The chapter number never changes. The media rule is re-checked
against the parent format because an update may clear a required media URL.

Returns:
  - error: StructuralViolation, validation or NotFound errors
*/
func (service *Service) UpdateChapter(context context.Context, chapter *Chapter) error {

	existing, err := service.chapterRepo.FindByID(context, chapter.ID)
	if err != nil {
		return err
	}

	parent, err := service.contentRepo.FindByID(context, existing.ContentID)
	if err != nil {
		return err
	}

	if err := ValidateChapterWrite(parent.Format, chapter.MediaURL); err != nil {
		return err
	}
	if !parent.Format.Capabilities().RequiresChapterMedia {
		chapter.MediaURL = ""
		chapter.DurationSecs = nil
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title)
	validator.MaxLen(FieldTitle, chapter.Title, maxTitleLen)
	validator.MaxLen(FieldDescription, chapter.Description, maxDescriptionLen)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.chapterRepo.Update(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", chapter.ID))
	return nil
}

/*
RemoveChapter soft-deletes a chapter and cascades to its sections.

Description: One transaction hides the chapter and every live section under
it. Sibling chapter numbers keep their gaps; ordinals are never reused.
*/
func (service *Service) RemoveChapter(context context.Context, id string) error {
	if err := service.chapterRepo.SoftDeleteCascade(context, id); err != nil {
		return err
	}

	service.logger.Info("chapter_removed", slog.String("chapter_id", id))
	return nil
}

// chapterSlugChecker adapts [ChapterRepository] to the [sluggen.Checker]
// interface without widening the repository contract.
type chapterSlugChecker struct {
	repo ChapterRepository
}

func (c chapterSlugChecker) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	return c.repo.SlugExists(ctx, slug, excludeID)
}
