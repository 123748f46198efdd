// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Role in the ordinal/slug safety net
//
// The uniqueness constraints on (content_id, chapter_number),
// (chapter_id, section_order) and the per-catalog slug indexes are the actual
// correctness guarantee for derived values computed with read-then-write.
// Services detect the violation via [IsUniqueViolation] and re-derive, so this
// package must classify SQLSTATE 23505 precisely.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/tirtha/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Uniqueness conflicts become client-safe 409s. Callers that can
	// re-derive the conflicting value (ordinals, slugs) must check
	// IsUniqueViolation BEFORE calling Wrap and retry instead.
	if IsUniqueViolation(err) {
		return apperr.Conflict("A conflicting record already exists")
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// ConstraintName returns the violated constraint's name for 23505 errors,
// or the empty string for anything else. Services use it to distinguish an
// ordinal collision (retry) from an unrelated conflict (surface).
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
