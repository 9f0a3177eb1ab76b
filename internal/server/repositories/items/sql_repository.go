// Package items provides the SQL-backed inventory repository. Every query
// except FindOwner is scoped by user_id.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

// SQLRepository implements inventory storage over a dbx.DBTX.
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts item and fills in its ID.
func (r *SQLRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query :=
		`INSERT INTO inventory_items (name, quantity, category, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Quantity, item.Category, item.UserID, item.CreatedAt).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// ListByOwner returns the owner's items in insertion order. The result is
// empty, not nil, when the owner has none.
func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	query :=
		`SELECT id, name, quantity, category, user_id, created_at FROM inventory_items
		 WHERE user_id = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	result := []*models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Category, &item.UserID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// DeleteForOwner removes the item only when it belongs to ownerID and
// reports whether a row was deleted.
func (r *SQLRepository) DeleteForOwner(ctx context.Context, itemID, ownerID int64) (bool, error) {
	query := `DELETE FROM inventory_items WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, itemID, ownerID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}

	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// FindOwner returns the owner of itemID, or common.ErrorNotFound.
func (r *SQLRepository) FindOwner(ctx context.Context, itemID int64) (int64, error) {
	query := `SELECT user_id FROM inventory_items WHERE id = $1`

	var ownerID int64
	if err := r.db.QueryRowContext(ctx, query, itemID).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return ownerID, nil
}
