// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes this tool cares about.
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeUndefinedColumn     = "42703"
	pgCodeUndefinedTable      = "42P01"
	pgCodeReadOnlyTransaction = "25006"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsDuplicateKeyError reports whether err is a unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	return pgErrorCode(err) == pgCodeUniqueViolation
}

// IsUndefinedColumnError reports whether err was caused by querying a column
// that does not exist, typically a schema mismatch.
func IsUndefinedColumnError(err error) bool {
	return pgErrorCode(err) == pgCodeUndefinedColumn
}

// IsUndefinedTableError reports whether err was caused by querying a table
// that does not exist.
func IsUndefinedTableError(err error) bool {
	return pgErrorCode(err) == pgCodeUndefinedTable
}

// IsReadOnlyError reports whether err was caused by a write statement on a
// read-only connection.
func IsReadOnlyError(err error) bool {
	return pgErrorCode(err) == pgCodeReadOnlyTransaction
}
