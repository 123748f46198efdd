// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/database/schema"
)

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// accountSelectColumns is the SELECT list shared by account reads.
func accountSelectColumns() string {
	t := schema.UsersAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Username, t.Email, t.PasswordHash, t.DisplayName,
		t.Role, t.IsVerified, t.CreatedAt, t.UpdatedAt,
	)
}

// scanUser hydrates one account from a row positioned on accountSelectColumns.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Role,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Unique violations on username/email pass through raw so the
service can map them to client-safe Conflict errors.
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	t := schema.UsersAccount

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.Table,
		t.ID, t.Username, t.Email, t.PasswordHash, t.DisplayName,
		t.Role, t.IsVerified, t.CreatedAt, t.UpdatedAt,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.Role,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return err
}

/*
FindByEmail retrieves a live user record by their unique email address.
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	t := schema.UsersAccount

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		accountSelectColumns(), t.Table, t.Email, t.DeletedAt)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres: failed to find user by email: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves a live user record by their unique username.
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	t := schema.UsersAccount

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		accountSelectColumns(), t.Table, t.Username, t.DeletedAt)

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres: failed to find user by username: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a live user record by their unique ID.
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	t := schema.UsersAccount

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		accountSelectColumns(), t.Table, t.ID, t.DeletedAt)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres: failed to find user by id: %w", err)
	}

	return user, nil
}

/*
Update persists changes to a user's mutable profile fields.
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	t := schema.UsersAccount

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.Username, t.DisplayName, t.UpdatedAt, t.ID, t.DeletedAt,
	)

	user.UpdatedAt = time.Now()
	result, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.DisplayName,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific user.
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	t := schema.UsersAccount

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.PasswordHash, t.UpdatedAt, t.ID, t.DeletedAt)

	result, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres: failed to update password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
SoftDelete marks a user account as deleted using their ID.
*/
func (repository *PostgresUserRepository) SoftDelete(context context.Context, id string) error {
	t := schema.UsersAccount

	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.DeletedAt, t.ID, t.DeletedAt)

	result, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres: failed to soft delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
MarkVerified updates the user's status to isverified = true.
*/
func (repository *PostgresUserRepository) MarkVerified(context context.Context, userID string) error {
	t := schema.UsersAccount

	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = $2 WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.IsVerified, t.UpdatedAt, t.ID, t.DeletedAt)

	result, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres: failed to mark user verified: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
