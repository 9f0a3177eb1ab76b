// Package users provides the SQL-backed user repository. Queries use $N
// placeholders and RETURNING, which both PostgreSQL and SQLite understand.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

// SQLRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts user and fills in its ID. A UNIQUE violation is reported as
// common.ErrDuplicateEmail or common.ErrDuplicateUsername.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Email, user.PasswordHash, user.CreatedAt).Scan(&user.ID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, duplicateError(err)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func duplicateError(err error) error {
	if strings.Contains(dbx.ViolatedConstraint(err), "username") {
		return fmt.Errorf("%w: %v", common.ErrDuplicateUsername, err)
	}
	return fmt.Errorf("%w: %v", common.ErrDuplicateEmail, err)
}

// GetUserByEmail returns common.ErrorNotFound when no user has that email.
func (r *SQLRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at FROM users
		 WHERE email = $1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.UserName, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// List returns every user ordered by id.
func (r *SQLRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
