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

// chapterRepository implements the [ChapterRepository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

// chapterSelectColumns is the SELECT list shared by chapter reads.
func chapterSelectColumns(alias string) string {
	t := schema.CoreChapter
	return fmt.Sprintf("%[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s",
		alias,
		t.ID, t.ContentID, t.ChapterNumber, t.Title, t.Slug, t.Description,
		t.MediaURL, t.DurationSecs, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	)
}

// scanChapter hydrates one entity from a row positioned on chapterSelectColumns.
func scanChapter(row pgx.Row, extra ...any) (*Chapter, error) {
	var c Chapter
	targets := []any{
		&c.ID, &c.ContentID, &c.ChapterNumber, &c.Title, &c.Slug, &c.Description,
		&c.MediaURL, &c.DurationSecs, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &c, nil
}

// # Chapter Repository Implementation

/*
ListByContent retrieves a page of live chapters ordered by chapter number.

Returns:
  - []*Chapter: Slice of chapters
  - int: Total live chapters of the work
  - error: Storage failures
*/
func (repository *chapterRepository) ListByContent(context context.Context, contentID string, limit, offset int) ([]*Chapter, int, error) {
	t := schema.CoreChapter

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
		ORDER BY c.%s ASC
		LIMIT $2 OFFSET $3
	`, chapterSelectColumns("c"), t.Table, t.ContentID, t.DeletedAt, t.ChapterNumber)

	rows, err := repository.pool.Query(context, query, contentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	var totalCount int

	for rows.Next() {
		chapter, err := scanChapter(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, totalCount, nil
}

/*
ListAllByContent retrieves every live chapter of a work for the TOC view.
*/
func (repository *chapterRepository) ListAllByContent(context context.Context, contentID string) ([]*Chapter, error) {
	t := schema.CoreChapter

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
		ORDER BY c.%s ASC
	`, chapterSelectColumns("c"), t.Table, t.ContentID, t.DeletedAt, t.ChapterNumber)

	rows, err := repository.pool.Query(context, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list all chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, nil
}

/*
FindByID returns a single live chapter by UUID.
*/
func (repository *chapterRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	t := schema.CoreChapter

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
	`, chapterSelectColumns("c"), t.Table, t.ID, t.DeletedAt)

	chapter, err := scanChapter(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter by id: %w", err)
	}

	return chapter, nil
}

/*
NextChapterNumber derives the next ordinal over ALL siblings, soft-deleted
rows included.

Description: COALESCE turns the empty-work case into 0, so the first chapter
gets number 1. The scan is deliberately NOT filtered on deletedat: a removed
trailing chapter must keep holding its slot, otherwise its number would be
silently reissued. Gaps left by deletions are preserved, never reused.
*/
func (repository *chapterRepository) NextChapterNumber(context context.Context, contentID string) (int, error) {
	t := schema.CoreChapter

	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(%s), 0) + 1
		FROM %s
		WHERE %s = $1
	`, t.ChapterNumber, t.Table, t.ContentID)

	var next int
	if err := repository.pool.QueryRow(context, query, contentID).Scan(&next); err != nil {
		return 0, fmt.Errorf("postgres: failed to derive next chapter number: %w", err)
	}

	return next, nil
}

/*
Create inserts a new chapter.

Description: Unique-violation errors are returned raw so the service can
distinguish an ordinal/slug race from other failures and retry.
*/
func (repository *chapterRepository) Create(context context.Context, chapter *Chapter) error {
	t := schema.CoreChapter

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`,
		t.Table,
		t.ID, t.ContentID, t.ChapterNumber, t.Title, t.Slug, t.Description,
		t.MediaURL, t.DurationSecs,
	)

	_, err := repository.pool.Exec(context, query,
		chapter.ID,
		chapter.ContentID,
		chapter.ChapterNumber,
		chapter.Title,
		chapter.Slug,
		chapter.Description,
		chapter.MediaURL,
		chapter.DurationSecs,
	)

	return err
}

/*
Update overwrites mutable chapter metadata.

Description: The chapter number is never updated; positional identity is
assigned once at creation and stays stable for readers' bookmarks.
*/
func (repository *chapterRepository) Update(context context.Context, chapter *Chapter) error {
	t := schema.CoreChapter

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $5 AND %s IS NULL
	`,
		t.Table,
		t.Title, t.Description, t.MediaURL, t.DurationSecs, t.UpdatedAt,
		t.ID, t.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query,
		chapter.Title,
		chapter.Description,
		chapter.MediaURL,
		chapter.DurationSecs,
		chapter.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	return nil
}

/*
SoftDeleteCascade hides a chapter and all of its live sections atomically.

Description: Both updates share one transaction so a caller-side timeout can
never leave a hidden chapter with visible orphan sections.
*/
func (repository *chapterRepository) SoftDeleteCascade(context context.Context, id string) error {
	chapterTable := schema.CoreChapter
	sectionTable := schema.CoreSection

	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin cascade delete: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	// 1. Hide the chapter itself
	chapterQuery := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		chapterTable.Table, chapterTable.DeletedAt, chapterTable.ID, chapterTable.DeletedAt)

	result, err := tx.Exec(context, chapterQuery, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete chapter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	// 2. Hide its live sections
	sectionQuery := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		sectionTable.Table, sectionTable.DeletedAt, sectionTable.ChapterID, sectionTable.DeletedAt)

	if _, err := tx.Exec(context, sectionQuery, id); err != nil {
		return fmt.Errorf("postgres: failed to cascade delete sections: %w", err)
	}

	if err := tx.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit cascade delete: %w", err)
	}

	return nil
}

/*
SlugExists probes the live chapter slug namespace.
*/
func (repository *chapterRepository) SlugExists(context context.Context, slug string, excludeID string) (bool, error) {
	t := schema.CoreChapter

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
		return false, fmt.Errorf("postgres: failed to check chapter slug: %w", err)
	}

	return exists, nil
}
