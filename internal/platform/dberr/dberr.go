// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
)

const (
	// sqlStateUniqueViolation is the Postgres SQLSTATE for unique constraint violations.
	sqlStateUniqueViolation = "23505"

	// sqlStateCheckViolation is raised by CHECK constraints such as the no-self-follow rule.
	sqlStateCheckViolation = "23514"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the entity for NOT_FOUND messages (e.g. "Post").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Errors that are already classified pass through untouched.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint mapping
	if IsUniqueViolation(err) {
		return apperr.Conflict(fmt.Sprintf("%s already exists", resource))
	}
	if IsCheckViolation(err) {
		return apperr.ValidationError(fmt.Sprintf("%s violates a data constraint", resource))
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasSQLState(err, sqlStateUniqueViolation)
}

// IsCheckViolation reports whether err is a Postgres CHECK constraint violation.
func IsCheckViolation(err error) bool {
	return hasSQLState(err, sqlStateCheckViolation)
}

func hasSQLState(err error, code string) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == code
}
