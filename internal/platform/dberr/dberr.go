// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dberr classifies PostgreSQL failures into [apperr.AppError] values.

Repositories pass every pgx error through [Wrap], so services only ever see
the application codes:

  - no rows: NOT_FOUND
  - unique violation: CONFLICT (duplicate email, second review)
  - foreign key violation: NOT_FOUND (the referenced course or programme is gone)
  - check violation: VALIDATION_ERROR (a score or gender outside its range)
  - anything else: INTERNAL_ERROR, with the query action kept for the logs
*/
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/rmc/internal/platform/apperr"
)

// SQLSTATE codes of the integrity constraints used by the schema.
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap classifies err. action names the failed query, e.g. "course_create".
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		var classified *apperr.AppError
		switch pgErr.Code {
		case uniqueViolation:
			classified = apperr.Conflict("Record already exists")
		case foreignKeyViolation:
			classified = apperr.NotFound("Referenced record")
		case checkViolation:
			classified = apperr.ValidationError("A value is out of range")
		}

		if classified != nil {
			classified.Cause = fmt.Errorf("%s: %s: %w", action, pgErr.ConstraintName, err)
			return classified
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err is a NOT_FOUND application error.
func IsNotFound(err error) bool {
	return apperr.IsCode(err, apperr.CodeNotFound)
}
