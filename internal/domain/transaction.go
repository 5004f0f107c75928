// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a token movement.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeRepay    TransactionType = "repay"
)

// ValidTransactionType reports whether t is one of the known types.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeDeposit, TransactionTypeWithdraw,
		TransactionTypeTransfer, TransactionTypeRepay:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a transaction.
// Transitions only move forward: pending -> completed or pending -> canceled.
// Completed and canceled are terminal.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCanceled  TransactionStatus = "canceled"
)

// Transaction is a ledger record of token movement between wallets.
// Reference is the externally stable token used in scannable codes and
// status polling; it is distinct from the row id. Source and destination
// are independently nullable: deposits have no source, withdrawals no
// destination, and a vendor-initiated charge starts with a null source
// that is backfilled when the payer confirms.
type Transaction struct {
	ID              int64             `db:"id" json:"id"`
	Reference       string            `db:"reference" json:"reference"`
	SourceWalletID  *int64            `db:"source_wallet_id" json:"source_wallet_id"`
	DestWalletID    *int64            `db:"dest_wallet_id" json:"dest_wallet_id"`
	Type            TransactionType   `db:"type" json:"type"`
	Amount          decimal.Decimal   `db:"amount" json:"amount"`
	ItemID          *int64            `db:"item_id" json:"item_id"`
	VendorID        *int64            `db:"vendor_id" json:"vendor_id"`
	Location        *string           `db:"location" json:"location"`
	Status          TransactionStatus `db:"status" json:"status"`
	TransactionTime time.Time         `db:"transaction_time" json:"transaction_time"`
	Metadata        *string           `db:"metadata" json:"metadata"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
}

// TransactionItem is one line of a multi-item cart, owned by its
// transaction and immutable after creation.
type TransactionItem struct {
	ID            int64           `db:"id" json:"id"`
	TransactionID int64           `db:"transaction_id" json:"transaction_id"`
	ItemID        *int64          `db:"item_id" json:"item_id"`
	Quantity      int             `db:"quantity" json:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unit_price"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// VendorTransaction is a transaction joined with item and payer info for
// the vendor dashboard.
type VendorTransaction struct {
	Transaction
	ItemName  *string `db:"item_name" json:"item_name"`
	UserName  *string `db:"user_name" json:"user_name"`
	UserEmail *string `db:"user_email" json:"user_email"`
}

// UserTransaction is a transaction joined with item and vendor info for a
// user's history view.
type UserTransaction struct {
	Transaction
	ItemName       *string             `db:"item_name" json:"item_name"`
	ItemPrice      decimal.NullDecimal `db:"item_price" json:"item_price"`
	VendorName     *string             `db:"vendor_name" json:"vendor_name"`
	VendorLocation *string             `db:"vendor_location" json:"vendor_location"`
}

// TopItem is the best-selling item for a vendor.
type TopItem struct {
	ItemID  int64           `db:"item_id" json:"item_id"`
	Name    *string         `db:"name" json:"name"`
	Count   int64           `db:"count" json:"count"`
	Revenue decimal.Decimal `db:"revenue" json:"revenue"`
}

// TopLocation aggregates completed sales per free-text location.
type TopLocation struct {
	Location         string          `db:"location" json:"location"`
	TransactionCount int64           `db:"transaction_count" json:"transaction_count"`
	TotalTokens      decimal.Decimal `db:"total_tokens" json:"total_tokens"`
}
