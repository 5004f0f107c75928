// internal/repository/vendor_repo.go
package repository

import (
	"context"

	"cashless-wallet/internal/domain"
)

// VendorRepository defines the interface for vendor data operations.
type VendorRepository interface {
	// Create inserts a new vendor using the provided DBExecutor.
	Create(ctx context.Context, q DBExecutor, vendor *domain.Vendor) error
	// GetByID retrieves a vendor by its id.
	GetByID(ctx context.Context, q DBExecutor, id int64) (*domain.Vendor, error)
	// GetByUserID retrieves the vendor owned by a user account.
	GetByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Vendor, error)
}
