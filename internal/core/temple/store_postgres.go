package temple

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

func (repository *PostgresRepository) ListTemples(context context.Context, f Filter, limit, offset int) ([]*Temple, int, error) {
	t := schema.CoreTemple

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s IS NULL
	`,
		t.ID, t.Name, t.Slug, t.Description, t.City, t.State, t.Country, t.CreatedAt, t.UpdatedAt,
		t.Table, t.DeletedAt,
	)

	args := []any{}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		query += fmt.Sprintf(` AND (%s ILIKE $%d OR %s ILIKE $%d)`, t.Name, len(args), t.City, len(args))
	}
	if f.Country != "" {
		args = append(args, f.Country)
		query += fmt.Sprintf(` AND %s = $%d`, t.Country, len(args))
	}

	query += fmt.Sprintf(` ORDER BY %s ASC LIMIT $%d OFFSET $%d`, t.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_temples")
	}
	defer rows.Close()

	var temples []*Temple
	var total int

	for rows.Next() {
		temple := &Temple{}
		if err := rows.Scan(
			&temple.ID, &temple.Name, &temple.Slug, &temple.Description,
			&temple.City, &temple.State, &temple.Country,
			&temple.CreatedAt, &temple.UpdatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_temple")
		}
		temples = append(temples, temple)
	}

	return temples, total, nil
}

func (repository *PostgresRepository) GetTemple(context context.Context, id string) (*Temple, error) {
	t := schema.CoreTemple

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		t.ID, t.Name, t.Slug, t.Description, t.City, t.State, t.Country, t.CreatedAt, t.UpdatedAt,
		t.Table, t.ID, t.DeletedAt,
	)

	temple := &Temple{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&temple.ID, &temple.Name, &temple.Slug, &temple.Description,
		&temple.City, &temple.State, &temple.Country,
		&temple.CreatedAt, &temple.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_temple")
	}

	return temple, nil
}

func (repository *PostgresRepository) GetTempleBySlug(context context.Context, slug string) (*Temple, error) {
	t := schema.CoreTemple

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		t.ID, t.Name, t.Slug, t.Description, t.City, t.State, t.Country, t.CreatedAt, t.UpdatedAt,
		t.Table, t.Slug, t.DeletedAt,
	)

	temple := &Temple{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&temple.ID, &temple.Name, &temple.Slug, &temple.Description,
		&temple.City, &temple.State, &temple.Country,
		&temple.CreatedAt, &temple.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_temple_by_slug")
	}

	return temple, nil
}

// CreateTemple returns raw errors so the service can retry slug collisions.
func (repository *PostgresRepository) CreateTemple(context context.Context, temple *Temple) error {
	t := schema.CoreTemple

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.Name, t.Slug, t.Description, t.City, t.State, t.Country,
		t.CreatedAt, t.UpdatedAt,
	)

	return repository.db.QueryRow(context, query,
		temple.ID, temple.Name, temple.Slug, temple.Description,
		temple.City, temple.State, temple.Country,
	).Scan(&temple.CreatedAt, &temple.UpdatedAt)
}

func (repository *PostgresRepository) UpdateTemple(context context.Context, temple *Temple) error {
	t := schema.CoreTemple

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		t.Table, t.Name, t.Description, t.City, t.State, t.Country, t.UpdatedAt,
		t.ID, t.DeletedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		temple.ID, temple.Name, temple.Description, temple.City, temple.State, temple.Country,
	).Scan(&temple.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dberr.ErrNotFound
	}
	return dberr.Wrap(err, "update_temple")
}

func (repository *PostgresRepository) DeleteTemple(context context.Context, id string) error {
	t := schema.CoreTemple

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.DeletedAt, t.ID, t.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_temple")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string, excludeID string) (bool, error) {
	t := schema.CoreTemple

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
		return false, dberr.Wrap(err, "check_temple_slug")
	}

	return exists, nil
}
