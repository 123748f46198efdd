package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tirtha/internal/platform/database/schema"
	"github.com/taibuivan/tirtha/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCategories(context context.Context, f Filter, limit, offset int) ([]*Category, int, error) {
	t := schema.CoreCategory

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s IS NULL
	`,
		t.ID, t.Name, t.Slug, t.Description, t.CreatedAt, t.UpdatedAt,
		t.Table, t.DeletedAt,
	)

	args := []any{}
	if f.Query != "" {
		query += fmt.Sprintf(` AND %s ILIKE $1`, t.Name)
		args = append(args, "%"+f.Query+"%")
	}

	query += fmt.Sprintf(` ORDER BY %s ASC LIMIT $%d OFFSET $%d`, t.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	var total int

	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) GetCategory(context context.Context, id string) (*Category, error) {
	t := schema.CoreCategory

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		t.ID, t.Name, t.Slug, t.Description, t.CreatedAt, t.UpdatedAt,
		t.Table, t.ID, t.DeletedAt,
	)

	c := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}

	return c, nil
}

func (repository *PostgresRepository) GetCategoryBySlug(context context.Context, slug string) (*Category, error) {
	t := schema.CoreCategory

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		t.ID, t.Name, t.Slug, t.Description, t.CreatedAt, t.UpdatedAt,
		t.Table, t.Slug, t.DeletedAt,
	)

	c := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return c, nil
}

// CreateCategory returns raw errors so the service can retry slug collisions.
func (repository *PostgresRepository) CreateCategory(context context.Context, category *Category) error {
	t := schema.CoreCategory

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.Name, t.Slug, t.Description,
		t.CreatedAt, t.UpdatedAt,
	)

	return repository.db.QueryRow(context, query,
		category.ID, category.Name, category.Slug, category.Description,
	).Scan(&category.CreatedAt, &category.UpdatedAt)
}

func (repository *PostgresRepository) UpdateCategory(context context.Context, category *Category) error {
	t := schema.CoreCategory

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		t.Table, t.Name, t.Description, t.UpdatedAt,
		t.ID, t.DeletedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, category.ID, category.Name, category.Description).Scan(&category.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dberr.ErrNotFound
	}
	return dberr.Wrap(err, "update_category")
}

func (repository *PostgresRepository) DeleteCategory(context context.Context, id string) error {
	t := schema.CoreCategory

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.DeletedAt, t.ID, t.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string, excludeID string) (bool, error) {
	t := schema.CoreCategory

	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL AND %s <> $2
		)
	`, t.Table, t.Slug, t.DeletedAt, t.ID)

	if excludeID == "" {
		excludeID = "00000000-0000-0000-0000-000000000000"
	}

	var exists bool
	if err := repository.db.QueryRow(context, query, slug, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_category_slug")
	}

	return exists, nil
}
