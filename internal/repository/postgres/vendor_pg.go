// internal/repository/postgres/vendor_pg.go
package postgres

import (
	"context"
	"database/sql"

	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// VendorRepository implements repository.VendorRepository for PostgreSQL.
type VendorRepository struct{}

// NewVendorRepository creates a new VendorRepository.
func NewVendorRepository() repository.VendorRepository {
	return &VendorRepository{}
}

const vendorColumns = `id, user_id, name, location, longitude, latitude, created_at`

// Create inserts a new vendor.
func (r *VendorRepository) Create(ctx context.Context, q repository.DBExecutor, vendor *domain.Vendor) error {
	query := `INSERT INTO vendors (user_id, name, location, longitude, latitude, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		vendor.UserID, vendor.Name, vendor.Location, vendor.Longitude, vendor.Latitude, vendor.CreatedAt,
	).Scan(&vendor.ID)
	if err != nil {
		return &db.StorageError{Op: "create vendor", Err: err}
	}
	return nil
}

// GetByID retrieves a vendor by its id.
func (r *VendorRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Vendor, error) {
	var vendor domain.Vendor
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	if err := q.GetContext(ctx, &vendor, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrVendorNotFound
		}
		return nil, &db.StorageError{Op: "get vendor by id", Err: err}
	}
	return &vendor, nil
}

// GetByUserID retrieves the vendor owned by a user account.
func (r *VendorRepository) GetByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Vendor, error) {
	var vendor domain.Vendor
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE user_id = $1`
	if err := q.GetContext(ctx, &vendor, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrVendorNotFound
		}
		return nil, &db.StorageError{Op: "get vendor by user id", Err: err}
	}
	return &vendor, nil
}
