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

// # Section Operations

/*
ListSections retrieves a page of a chapter's sections.

Description: The parent chapter is loaded first so a request against a
missing or soft-deleted chapter reports NotFound instead of an empty page.

Returns:
  - []*Section: Matching page, ordered by section order
  - int: Total live sections
  - error: apperr.NotFound or storage errors
*/
func (service *Service) ListSections(context context.Context, chapterID string, limit, offset int) ([]*Section, int, error) {
	if _, err := service.chapterRepo.FindByID(context, chapterID); err != nil {
		return nil, 0, err
	}

	return service.sectionRepo.ListByChapter(context, chapterID, limit, offset)
}

/*
GetSection retrieves a single section by UUID.
*/
func (service *Service) GetSection(context context.Context, id string) (*Section, error) {
	return service.sectionRepo.FindByID(context, id)
}

/*
CreateSection validates, orders and persists a new section.

Description: The structural check walks up two levels — the section's legality
depends on the chapter's parent work being text-format — and runs before any
ordinal is derived. The first section of a chapter gets order 0.

Parameters:
  - context: context.Context
  - section: *Section (ChapterID and body set; ID/order/slug assigned here)

Returns:
  - error: StructuralViolation, validation, NotFound or Conflict errors
*/
func (service *Service) CreateSection(context context.Context, section *Section) error {

	// Resolve the full ancestry: chapter, then its work.
	chapter, err := service.chapterRepo.FindByID(context, section.ChapterID)
	if err != nil {
		return err
	}

	parent, err := service.contentRepo.FindByID(context, chapter.ContentID)
	if err != nil {
		return err
	}

	// Structural check FIRST: no ordinal is consumed for an illegal write.
	if err := ValidateSectionWrite(parent.Format); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, section.Title)
	validator.MaxLen(FieldTitle, section.Title, maxTitleLen)
	validator.Required(FieldBody, section.Body)

	if err := validator.Err(); err != nil {
		return err
	}

	if section.ID == "" {
		section.ID = uuidv7.New()
	}

	// Ordinal + slug derivation, retried as one unit on a losing race.
	for attempt := 0; attempt < constants.OrdinalRetryBudget; attempt++ {
		order, err := service.sectionRepo.NextSectionOrder(context, section.ChapterID)
		if err != nil {
			return err
		}
		section.SectionOrder = order

		slug, err := sluggen.Generate(context, sectionSlugChecker{service.sectionRepo}, section.Title, "")
		if err != nil {
			return err
		}
		section.Slug = slug

		err = service.sectionRepo.Create(context, section)
		if err == nil {
			service.logger.Info("section_created",
				slog.String("section_id", section.ID),
				slog.String("chapter_id", section.ChapterID),
				slog.Int("section_order", section.SectionOrder),
			)
			return nil
		}

		if !dberr.IsUniqueViolation(err) {
			return dberr.Wrap(err, "create section")
		}
	}

	return apperr.Conflict("Could not allocate a section order, please retry")
}

/*
UpdateSection validates and persists section changes.

Description: The section order never changes after creation.
*/
func (service *Service) UpdateSection(context context.Context, section *Section) error {

	validator := &validate.Validator{}
	validator.Required(FieldTitle, section.Title)
	validator.MaxLen(FieldTitle, section.Title, maxTitleLen)
	validator.Required(FieldBody, section.Body)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.sectionRepo.Update(context, section); err != nil {
		return err
	}

	service.logger.Info("section_updated", slog.String("section_id", section.ID))
	return nil
}

/*
RemoveSection soft-deletes a section. Sibling orders keep their gaps.
*/
func (service *Service) RemoveSection(context context.Context, id string) error {
	if err := service.sectionRepo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("section_removed", slog.String("section_id", id))
	return nil
}

// sectionSlugChecker adapts [SectionRepository] to the [sluggen.Checker]
// interface.
type sectionSlugChecker struct {
	repo SectionRepository
}

func (c sectionSlugChecker) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	return c.repo.SlugExists(ctx, slug, excludeID)
}
