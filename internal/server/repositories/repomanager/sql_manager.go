// Package repomanager provides a concrete RepositoryManager for the SQL
// backends, wiring together repository constructors and goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/migrations"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repository implementations and runs
// the migrations that match its dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Items returns an items.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Items(db dbx.DBTX) items.Repository {
	return items.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseDialects maps our dialects to goose's names and migration directories.
var gooseDialects = map[dbx.Dialect]struct{ name, dir string }{
	dbx.DialectPostgres: {name: "pgx", dir: "postgres"},
	dbx.DialectSQLite:   {name: "sqlite3", dir: "sqlite"},
}

// RunMigrations sets up goose with the embedded migrations for the
// manager's dialect and applies them to db.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	d, ok := gooseDialects[m.dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", m.dialect)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(d.name); err != nil {
		return err
	}
	goose.SetLogger(goose.NopLogger())

	return gooseUpContext(ctx, db, d.dir)
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) (RepositoryManager, error) {
	if _, ok := gooseDialects[dialect]; !ok {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return &SQLRepositoryManager{dialect: dialect}, nil
}
