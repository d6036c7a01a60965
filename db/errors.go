// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"

	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Integrity violations surfaced to callers. Handlers map these onto HTTP
// statuses; there is no recovery logic at this layer.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
)

// PostgreSQL error codes, class 23 (integrity constraint violation).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Translate converts driver-specific constraint errors into the package
// sentinels, wrapping so the original error stays inspectable. Errors that
// are not integrity violations pass through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return errors.Join(ErrUniqueViolation, err)
		case pgForeignKeyViolation:
			return errors.Join(ErrForeignKeyViolation, err)
		case pgCheckViolation:
			return errors.Join(ErrCheckViolation, err)
		}
		return err
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return errors.Join(ErrUniqueViolation, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return errors.Join(ErrForeignKeyViolation, err)
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return errors.Join(ErrCheckViolation, err)
		}
		return err
	}

	return err
}

// IsUnique reports whether err is a unique constraint violation.
func IsUnique(err error) bool {
	return errors.Is(Translate(err), ErrUniqueViolation)
}

// IsForeignKey reports whether err is a foreign key violation.
func IsForeignKey(err error) bool {
	return errors.Is(Translate(err), ErrForeignKeyViolation)
}

// IsCheck reports whether err is a check constraint violation.
func IsCheck(err error) bool {
	return errors.Is(Translate(err), ErrCheckViolation)
}
