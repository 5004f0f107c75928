// internal/repository/transaction_repo.go
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cashless-wallet/internal/domain"
)

// VendorTxFilter narrows vendor transaction queries. Zero values mean
// "no filter".
type VendorTxFilter struct {
	Status domain.TransactionStatus
	Type   domain.TransactionType
	Since  *time.Time
	Limit  int
	Offset int
}

// UserTxFilter narrows a user's transaction history. OrderBy must be one of
// the allow-listed sort keys; anything else falls back to the default.
type UserTxFilter struct {
	Status   domain.TransactionStatus
	Type     domain.TransactionType
	VendorID *int64
	ItemID   *int64
	Since    *time.Time
	Until    *time.Time
	OrderBy  string
	OrderDir string
	Limit    int
	Offset   int
}

// LineItemInput is one cart line to persist for a transaction.
type LineItemInput struct {
	ItemID    *int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// TransactionRepository defines the interface for transaction data
// operations, including the vendor and user aggregation queries.
type TransactionRepository interface {
	// Create inserts a new transaction record.
	Create(ctx context.Context, q DBExecutor, tx *domain.Transaction) error
	// GetByID retrieves a transaction by its row id.
	GetByID(ctx context.Context, q DBExecutor, id int64) (*domain.Transaction, error)
	// GetByReference retrieves a transaction by its external reference token.
	GetByReference(ctx context.Context, q DBExecutor, reference string) (*domain.Transaction, error)
	// GetByReferenceForUpdate is GetByReference with a row lock. Must be
	// called inside a transaction; it is the first read of the payment
	// confirmation so the idempotence check and the mutation are one unit.
	GetByReferenceForUpdate(ctx context.Context, q DBExecutor, reference string) (*domain.Transaction, error)
	// SetSourceWallet backfills a previously-null source wallet.
	SetSourceWallet(ctx context.Context, q DBExecutor, id, walletID int64) error
	// MarkCompletedByID flips status to completed and refreshes the
	// timestamp. Returns (nil, nil) when no row changed; callers treat that
	// as a no-op, not an error.
	MarkCompletedByID(ctx context.Context, q DBExecutor, id int64) (*domain.Transaction, error)
	// CancelByID flips a pending transaction to canceled. Returns (nil, nil)
	// when the transaction is missing or no longer pending.
	CancelByID(ctx context.Context, q DBExecutor, id int64) (*domain.Transaction, error)

	// CreateLineItems bulk-inserts cart lines for a transaction. No-op on
	// empty input.
	CreateLineItems(ctx context.Context, q DBExecutor, transactionID int64, lines []LineItemInput) error
	// GetLineItems returns the cart lines of a transaction.
	GetLineItems(ctx context.Context, q DBExecutor, transactionID int64) ([]domain.TransactionItem, error)

	// RecentByVendor lists a vendor's transactions joined with item and
	// payer info, newest first.
	RecentByVendor(ctx context.Context, q DBExecutor, vendorID int64, f VendorTxFilter) ([]domain.VendorTransaction, error)
	// CountByVendor counts a vendor's transactions under the same filters.
	CountByVendor(ctx context.Context, q DBExecutor, vendorID int64, f VendorTxFilter) (int64, error)
	// TokensSoldByVendor sums completed purchase amounts for a vendor.
	TokensSoldByVendor(ctx context.Context, q DBExecutor, vendorID int64, since *time.Time) (decimal.Decimal, error)
	// UniqueVisitorsByVendor counts distinct paying users for a vendor.
	UniqueVisitorsByVendor(ctx context.Context, q DBExecutor, vendorID int64, since *time.Time) (int64, error)
	// TopItemByVendor returns the vendor's best-selling item, or nil.
	TopItemByVendor(ctx context.Context, q DBExecutor, vendorID int64, byRevenue bool, since *time.Time) (*domain.TopItem, error)
	// TopLocationsByVendor ranks completed sales by location.
	TopLocationsByVendor(ctx context.Context, q DBExecutor, vendorID int64, limit int) ([]domain.TopLocation, error)
	// ListByUser returns a user's transaction history (as source or
	// destination) joined with item and vendor info.
	ListByUser(ctx context.Context, q DBExecutor, userID int64, f UserTxFilter) ([]domain.UserTransaction, error)
}
