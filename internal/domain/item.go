// internal/domain/item.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a menu entry sold by a vendor. PopularityCount is reporting data
// bumped best-effort when a purchase completes; it is not ledger state.
type Item struct {
	ID              int64           `db:"id" json:"id"`
	VendorID        *int64          `db:"vendor_id" json:"vendor_id"`
	Name            string          `db:"name" json:"name"`
	Price           decimal.Decimal `db:"price" json:"price"`
	PopularityCount int64           `db:"popularity_count" json:"popularity_count"`
	Metadata        *string         `db:"metadata" json:"metadata"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
