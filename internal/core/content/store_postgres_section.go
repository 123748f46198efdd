// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/database/schema"
)

// sectionRepository implements the [SectionRepository] interface using pgx.
type sectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository constructs a PostgreSQL backed section store.
func NewSectionRepository(pool *pgxpool.Pool) SectionRepository {
	return &sectionRepository{pool: pool}
}

// sectionSelectColumns is the SELECT list shared by section reads.
func sectionSelectColumns(alias string) string {
	t := schema.CoreSection
	return fmt.Sprintf("%[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s",
		alias,
		t.ID, t.ChapterID, t.SectionOrder, t.Title, t.Slug, t.Body,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	)
}

// scanSection hydrates one entity from a row positioned on sectionSelectColumns.
func scanSection(row pgx.Row, extra ...any) (*Section, error) {
	var s Section
	targets := []any{
		&s.ID, &s.ChapterID, &s.SectionOrder, &s.Title, &s.Slug, &s.Body,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &s, nil
}

// # Section Repository Implementation

/*
ListByChapter retrieves a page of live sections ordered by section order.

Returns:
  - []*Section: Slice of sections
  - int: Total live sections of the chapter
  - error: Storage failures
*/
func (repository *sectionRepository) ListByChapter(context context.Context, chapterID string, limit, offset int) ([]*Section, int, error) {
	t := schema.CoreSection

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s s
		WHERE s.%s = $1 AND s.%s IS NULL
		ORDER BY s.%s ASC
		LIMIT $2 OFFSET $3
	`, sectionSelectColumns("s"), t.Table, t.ChapterID, t.DeletedAt, t.SectionOrder)

	rows, err := repository.pool.Query(context, query, chapterID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []*Section
	var totalCount int

	for rows.Next() {
		section, err := scanSection(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan section: %w", err)
		}
		sections = append(sections, section)
	}

	return sections, totalCount, nil
}

/*
ListAllByContent retrieves every live section under a work's live chapters.

Description: A single join replaces one query per chapter when the TOC view
assembles a full book structure.
*/
func (repository *sectionRepository) ListAllByContent(context context.Context, contentID string) ([]*Section, error) {
	sectionTable := schema.CoreSection
	chapterTable := schema.CoreChapter

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s s
		JOIN %s c ON s.%s = c.%s
		WHERE c.%s = $1 AND c.%s IS NULL AND s.%s IS NULL
		ORDER BY c.%s ASC, s.%s ASC
	`,
		sectionSelectColumns("s"),
		sectionTable.Table,
		chapterTable.Table, sectionTable.ChapterID, chapterTable.ID,
		chapterTable.ContentID, chapterTable.DeletedAt, sectionTable.DeletedAt,
		chapterTable.ChapterNumber, sectionTable.SectionOrder,
	)

	rows, err := repository.pool.Query(context, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list sections by content: %w", err)
	}
	defer rows.Close()

	var sections []*Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan section: %w", err)
		}
		sections = append(sections, section)
	}

	return sections, nil
}

/*
FindByID returns a single live section by UUID.
*/
func (repository *sectionRepository) FindByID(context context.Context, id string) (*Section, error) {
	t := schema.CoreSection

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s s
		WHERE s.%s = $1 AND s.%s IS NULL
	`, sectionSelectColumns("s"), t.Table, t.ID, t.DeletedAt)

	section, err := scanSection(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Section")
		}
		return nil, fmt.Errorf("postgres: failed to find section by id: %w", err)
	}

	return section, nil
}

/*
NextSectionOrder derives the next ordinal over ALL siblings, soft-deleted
rows included.

Description: COALESCE with -1 makes the first section get order 0. Deleted
rows stay in the scan so a removed trailing section keeps its slot and the
ordinal is never reissued.
*/
func (repository *sectionRepository) NextSectionOrder(context context.Context, chapterID string) (int, error) {
	t := schema.CoreSection

	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(%s), -1) + 1
		FROM %s
		WHERE %s = $1
	`, t.SectionOrder, t.Table, t.ChapterID)

	var next int
	if err := repository.pool.QueryRow(context, query, chapterID).Scan(&next); err != nil {
		return 0, fmt.Errorf("postgres: failed to derive next section order: %w", err)
	}

	return next, nil
}

/*
Create inserts a new section. Unique-violation errors pass through raw for
the service's ordinal retry.
*/
func (repository *sectionRepository) Create(context context.Context, section *Section) error {
	t := schema.CoreSection

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`,
		t.Table,
		t.ID, t.ChapterID, t.SectionOrder, t.Title, t.Slug, t.Body,
	)

	_, err := repository.pool.Exec(context, query,
		section.ID,
		section.ChapterID,
		section.SectionOrder,
		section.Title,
		section.Slug,
		section.Body,
	)

	return err
}

/*
Update overwrites mutable section fields. The section order stays fixed.
*/
func (repository *sectionRepository) Update(context context.Context, section *Section) error {
	t := schema.CoreSection

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3 AND %s IS NULL
	`,
		t.Table,
		t.Title, t.Body, t.UpdatedAt,
		t.ID, t.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query,
		section.Title,
		section.Body,
		section.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update section: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Section")
	}

	return nil
}

/*
SoftDelete hides a section.
*/
func (repository *sectionRepository) SoftDelete(context context.Context, id string) error {
	t := schema.CoreSection

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.DeletedAt, t.ID, t.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete section: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Section")
	}

	return nil
}

/*
SlugExists probes the live section slug namespace.
*/
func (repository *sectionRepository) SlugExists(context context.Context, slug string, excludeID string) (bool, error) {
	t := schema.CoreSection

	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND %s IS NULL AND %s <> $2
		)
	`, t.Table, t.Slug, t.DeletedAt, t.ID)

	if excludeID == "" {
		excludeID = "00000000-0000-0000-0000-000000000000"
	}

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check section slug: %w", err)
	}

	return exists, nil
}
