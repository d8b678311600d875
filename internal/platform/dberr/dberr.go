// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/otakurin/internal/platform/apperr"
)

// uniqueViolation is the Postgres SQLSTATE for a unique index violation.
const uniqueViolation = "23505"

// Wrap inspects a database error and classifies it.
//
// pgx.ErrNoRows becomes NotFound(resource) and a unique violation becomes a
// Conflict. Everything else is wrapped with the action name and left for the
// HTTP layer to render as an internal error.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	if IsUniqueViolation(err) {
		conflict := apperr.Conflict(resource + " already exists")
		conflict.Cause = err
		return conflict
	}

	return fmt.Errorf("%s: %w", action, err)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == uniqueViolation
}
