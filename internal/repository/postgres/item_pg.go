// internal/repository/postgres/item_pg.go
package postgres

import (
	"context"
	"database/sql"

	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// ItemRepository implements repository.ItemRepository for PostgreSQL.
type ItemRepository struct{}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository() repository.ItemRepository {
	return &ItemRepository{}
}

const itemColumns = `id, vendor_id, name, price, popularity_count, metadata, created_at`

// Create inserts a new item.
func (r *ItemRepository) Create(ctx context.Context, q repository.DBExecutor, item *domain.Item) error {
	query := `INSERT INTO items (vendor_id, name, price, popularity_count, metadata, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		item.VendorID, item.Name, item.Price, item.PopularityCount, item.Metadata, item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return &db.StorageError{Op: "create item", Err: err}
	}
	return nil
}

// GetByID retrieves an item by its id.
func (r *ItemRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Item, error) {
	var item domain.Item
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	if err := q.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, &db.StorageError{Op: "get item by id", Err: err}
	}
	return &item, nil
}

// ListByVendor returns a vendor's menu items.
func (r *ItemRepository) ListByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64) ([]domain.Item, error) {
	items := []domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE vendor_id = $1 ORDER BY name`
	if err := q.SelectContext(ctx, &items, query, vendorID); err != nil {
		return nil, &db.StorageError{Op: "list vendor items", Err: err}
	}
	return items, nil
}

// IncrementPopularity bumps an item's popularity counter.
func (r *ItemRepository) IncrementPopularity(ctx context.Context, q repository.DBExecutor, itemID int64, amount int64) error {
	if amount <= 0 {
		return util.ErrInvalidAmount
	}
	query := `UPDATE items SET popularity_count = popularity_count + $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, amount, itemID)
	if err != nil {
		return &db.StorageError{Op: "increment item popularity", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &db.StorageError{Op: "increment item popularity", Err: err}
	}
	if rows == 0 {
		return util.ErrNotFound
	}
	return nil
}
