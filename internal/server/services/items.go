package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/repomanager"
)

// ItemService is the inventory store: every operation is scoped to the
// owning user.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ItemService {
	return &ItemService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "item_service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new item for ownerID. Blank name or quantity is a
// common.ErrorValidation; a blank category becomes common.DefaultCategory.
func (s *ItemService) Create(ctx context.Context, ownerID int64, name, quantity, category string) (*models.Item, error) {
	name = strings.TrimSpace(name)
	quantity = strings.TrimSpace(quantity)
	category = strings.TrimSpace(category)

	if name == "" || quantity == "" {
		return nil, fmt.Errorf("%w: name and quantity are required", common.ErrorValidation)
	}
	if category == "" {
		category = common.DefaultCategory
	}

	item := &models.Item{
		Name:      name,
		Quantity:  quantity,
		Category:  category,
		UserID:    ownerID,
		CreatedAt: s.now(),
	}

	created, err := s.repomanager.Items(s.db).Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("%w: error creating item: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "item created", "item_id", created.ID, "user_id", ownerID)
	return created, nil
}

// ListByOwner returns the owner's items in creation order.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	items, err := s.repomanager.Items(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: error listing items: %v", common.ErrorInternal, err)
	}
	return items, nil
}

// DeleteForOwner deletes itemID if ownerID owns it and reports whether it
// did. Missing and foreign items both return false; which one it was is only
// logged.
func (s *ItemService) DeleteForOwner(ctx context.Context, itemID, ownerID int64) (bool, error) {
	repo := s.repomanager.Items(s.db)

	deleted, err := repo.DeleteForOwner(ctx, itemID, ownerID)
	if err != nil {
		return false, fmt.Errorf("%w: error deleting item: %v", common.ErrorInternal, err)
	}
	if deleted {
		s.logger.Info(ctx, "item deleted", "item_id", itemID, "user_id", ownerID)
		return true, nil
	}

	owner, err := repo.FindOwner(ctx, itemID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		s.logger.Info(ctx, "delete rejected", "reason", "not found", "item_id", itemID, "user_id", ownerID)
	case err != nil:
		s.logger.Warn(ctx, "delete rejected, owner lookup failed", "item_id", itemID, "user_id", ownerID, "error", err.Error())
	default:
		s.logger.Warn(ctx, "delete rejected", "reason", "not owner", "item_id", itemID, "user_id", ownerID, "owner_id", owner)
	}

	return false, nil
}
