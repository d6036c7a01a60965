// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open opens a database handle for the given driver and URL.
// PostgreSQL is the production target; SQLite covers development and tests.
func Open(driver, url string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
		return sql.Open("postgres", url)
	case DriverSQLite:
		conn, err := sql.Open("sqlite", sqliteDSN(url))
		if err != nil {
			return nil, err
		}
		// A single connection avoids SQLITE_BUSY under concurrent writes.
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}

// sqliteDSN enables foreign key enforcement on every connection. Without the
// pragma SQLite silently ignores the schema's CASCADE and SET NULL rules.
func sqliteDSN(url string) string {
	const pragma = "_pragma=foreign_keys(1)"
	if strings.Contains(url, pragma) {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + pragma + "&_pragma=busy_timeout(5000)"
}
