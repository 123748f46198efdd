// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
PostgreSQL implementation of the content aggregate's data access.

It leans on a few Postgres features to keep the API fast:
  - Window Functions: COUNT(*) OVER() returns the total match count without a
    second round-trip, feeding the pagination engine.
  - Partial Unique Indexes: slug and ordinal uniqueness is enforced only over
    live rows (deletedat IS NULL), so soft-deleted works free their slugs.
  - Atomic Counters: view counts are incremented in-place to stay race-free.
*/
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/database/schema"
)

// # PostgreSQL Repositories

// contentRepository implements the [ContentRepository] interface using pgx.
type contentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository constructs a PostgreSQL backed content store.
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{pool: pool}
}

// contentColumns is the SELECT list shared by every content read.
func contentColumns(alias string) string {
	t := schema.CoreContent
	cols := []string{
		t.ID, t.Title, t.Slug, t.Description, t.Format, t.Status, t.Language,
		t.AuthorID, t.CategoryID, t.TempleID, t.FileURL, t.FileSize,
		t.ViewCount, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// scanContent hydrates one entity from a row positioned on contentColumns.
func scanContent(row pgx.Row, extra ...any) (*Content, error) {
	var c Content
	targets := []any{
		&c.ID, &c.Title, &c.Slug, &c.Description, &c.Format, &c.Status, &c.Language,
		&c.AuthorID, &c.CategoryID, &c.TempleID, &c.FileURL, &c.FileSize,
		&c.ViewCount, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &c, nil
}

// # Content Repository Implementation

/*
List retrieves a filtered page of live works, newest first.

Description: Equality filters are appended as parameterized predicates; the
substring query matches title OR description case-insensitively. The total
count rides along via a window function.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: Pagination window

Returns:
  - []*Content: Slice of works
  - int: Total matching works
  - error: Storage failures
*/
func (repository *contentRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Content, int, error) {
	t := schema.CoreContent

	// Query construction with dynamic predicate injection
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s c
		WHERE c.%s IS NULL
	`, contentColumns("c"), t.Table, t.DeletedAt))

	appendEquality := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if filter.Status != "" {
		appendEquality(t.Status, filter.Status)
	}
	if filter.Format != "" {
		appendEquality(t.Format, filter.Format)
	}
	if filter.Language != "" {
		appendEquality(t.Language, filter.Language)
	}
	if filter.CategoryID != "" {
		appendEquality(t.CategoryID, filter.CategoryID)
	}
	if filter.TempleID != "" {
		appendEquality(t.TempleID, filter.TempleID)
	}
	if filter.AuthorID != "" {
		appendEquality(t.AuthorID, filter.AuthorID)
	}

	// Substring search over title and description
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (c.%s ILIKE $%d OR c.%s ILIKE $%d)",
			t.Title, argID, t.Description, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Stable ordering is mandatory for offset pagination
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s DESC", t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list content: %w", err)
	}
	defer rows.Close()

	// Row iteration and entity hydration
	var works []*Content
	var totalCount int

	for rows.Next() {
		work, err := scanContent(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan content: %w", err)
		}
		works = append(works, work)
	}

	return works, totalCount, nil
}

/*
FindByID returns a single live work by UUID.

Returns:
  - *Content: Hydrated entity
  - error: apperr.NotFound when missing or soft-deleted
*/
func (repository *contentRepository) FindByID(context context.Context, id string) (*Content, error) {
	t := schema.CoreContent

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
	`, contentColumns("c"), t.Table, t.ID, t.DeletedAt)

	work, err := scanContent(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Content")
		}
		return nil, fmt.Errorf("postgres: failed to find content by id: %w", err)
	}

	return work, nil
}

/*
FindBySlug returns a single live work by slug.

Returns:
  - *Content: Hydrated entity
  - error: apperr.NotFound when missing or soft-deleted
*/
func (repository *contentRepository) FindBySlug(context context.Context, slug string) (*Content, error) {
	t := schema.CoreContent

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
	`, contentColumns("c"), t.Table, t.Slug, t.DeletedAt)

	work, err := scanContent(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Content")
		}
		return nil, fmt.Errorf("postgres: failed to find content by slug: %w", err)
	}

	return work, nil
}

/*
Create inserts a new work.

Description: Unique-violation errors are returned raw (not wrapped) so the
service layer can classify them via dberr.IsUniqueViolation and retry slug
generation.
*/
func (repository *contentRepository) Create(context context.Context, content *Content) error {
	t := schema.CoreContent

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`,
		t.Table,
		t.ID, t.Title, t.Slug, t.Description, t.Format, t.Status, t.Language,
		t.AuthorID, t.CategoryID, t.TempleID, t.FileURL, t.FileSize,
	)

	_, err := repository.pool.Exec(context, query,
		content.ID,
		content.Title,
		content.Slug,
		content.Description,
		content.Format,
		content.Status,
		content.Language,
		content.AuthorID,
		content.CategoryID,
		content.TempleID,
		content.FileURL,
		content.FileSize,
	)

	// Raw return keeps pgconn.PgError intact for the caller's retry logic.
	return err
}

/*
Update overwrites mutable metadata of a live work.

Description: The slug, format and view counter are intentionally absent from
the SET list: slugs change only via UpdateSlug, the format is immutable after
creation, and counters are owned by IncrementViewCount.
*/
func (repository *contentRepository) Update(context context.Context, content *Content) error {
	t := schema.CoreContent

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4,
			%s = $5, %s = $6, %s = NOW()
		WHERE %s = $7 AND %s IS NULL
	`,
		t.Table,
		t.Title, t.Description, t.Status, t.Language,
		t.CategoryID, t.TempleID, t.UpdatedAt,
		t.ID, t.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query,
		content.Title,
		content.Description,
		content.Status,
		content.Language,
		content.CategoryID,
		content.TempleID,
		content.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update content: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Content")
	}

	return nil
}

/*
UpdateSlug replaces only the slug of a live work.
*/
func (repository *contentRepository) UpdateSlug(context context.Context, id string, slug string) error {
	t := schema.CoreContent

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = NOW()
		WHERE %s = $2 AND %s IS NULL
	`, t.Table, t.Slug, t.UpdatedAt, t.ID, t.DeletedAt)

	result, err := repository.pool.Exec(context, query, slug, id)
	if err != nil {
		// Raw return: a unique violation here means a concurrent claim on
		// the new slug, which the service retries.
		return err
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Content")
	}

	return nil
}

/*
UpdateFile stores the object storage reference for the work's binary payload.
*/
func (repository *contentRepository) UpdateFile(context context.Context, id string, fileURL string, fileSize int64) error {
	t := schema.CoreContent

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3 AND %s IS NULL
	`, t.Table, t.FileURL, t.FileSize, t.UpdatedAt, t.ID, t.DeletedAt)

	result, err := repository.pool.Exec(context, query, fileURL, fileSize, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to update content file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Content")
	}

	return nil
}

/*
SoftDelete hides a work.

Description: The deletedat IS NULL predicate makes the call idempotent-safe:
deleting an already-deleted work reports NotFound rather than silently
re-stamping the timestamp.
*/
func (repository *contentRepository) SoftDelete(context context.Context, id string) error {
	t := schema.CoreContent

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.DeletedAt, t.ID, t.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete content: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Content")
	}

	return nil
}

/*
SlugExists probes the live slug namespace.

Description: Soft-deleted rows are excluded by the predicate, which is what
lets a deleted work's slug be reclaimed.
*/
func (repository *contentRepository) SlugExists(context context.Context, slug string, excludeID string) (bool, error) {
	t := schema.CoreContent

	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND %s IS NULL AND %s <> $2
		)
	`, t.Table, t.Slug, t.DeletedAt, t.ID)

	// A non-UUID sentinel keeps the exclusion predicate harmless for creates.
	if excludeID == "" {
		excludeID = "00000000-0000-0000-0000-000000000000"
	}

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check content slug: %w", err)
	}

	return exists, nil
}

/*
IncrementViewCount atomically updates a work's view counter.
*/
func (repository *contentRepository) IncrementViewCount(context context.Context, id string, delta int64) error {
	t := schema.CoreContent

	// Direct atomic increment to prevent race conditions during heavy traffic
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + $1 WHERE %s = $2`,
		t.Table, t.ViewCount, t.ViewCount, t.ID)

	_, err := repository.pool.Exec(context, query, delta, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to increment content view count: %w", err)
	}

	return nil
}
