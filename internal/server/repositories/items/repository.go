package items

import (
	"context"

	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	DeleteForOwner(ctx context.Context, itemID, ownerID int64) (bool, error)
	FindOwner(ctx context.Context, itemID int64) (int64, error)
}
