package dbx

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pantrykeeper/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL backend behind a DSN.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// sqlitePragmas are appended to every SQLite DSN so that each pooled
// connection enforces foreign keys and waits on locks instead of failing.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// DialectFromDSN picks PostgreSQL for postgres:// and postgresql:// URLs and
// SQLite for everything else.
func DialectFromDSN(dsn string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open opens a connection pool for dsn using the pgx or modernc SQLite driver.
func Open(dsn string) (*sql.DB, Dialect, error) {
	dialect := DialectFromDSN(dsn)

	driver := "pgx"
	if dialect == DialectSQLite {
		driver = "sqlite"
		if path := sqliteFilePath(dsn); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, "", fmt.Errorf("db open error: %w", err)
			}
		}
		dsn = withSQLitePragmas(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}

	return db, dialect, nil
}

func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// sqliteFilePath returns the database file named by a SQLite DSN, or "" for
// in-memory databases.
func sqliteFilePath(dsn string) string {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if strings.Contains(query, "mode=memory") || path == "" || path == ":memory:" {
		return ""
	}
	return strings.TrimPrefix(path, "//")
}
