// internal/repository/item_repo.go
package repository

import (
	"context"

	"cashless-wallet/internal/domain"
)

// ItemRepository defines the interface for item data operations.
type ItemRepository interface {
	// Create inserts a new item using the provided DBExecutor.
	Create(ctx context.Context, q DBExecutor, item *domain.Item) error
	// GetByID retrieves an item by its id.
	GetByID(ctx context.Context, q DBExecutor, id int64) (*domain.Item, error)
	// ListByVendor returns a vendor's menu items.
	ListByVendor(ctx context.Context, q DBExecutor, vendorID int64) ([]domain.Item, error)
	// IncrementPopularity bumps an item's popularity counter. Reporting
	// data only; callers treat failures as non-fatal.
	IncrementPopularity(ctx context.Context, q DBExecutor, itemID int64, amount int64) error
}
