// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // Fixed-point token amounts, no float drift
)

// Wallet holds a user's token balance. At most one wallet exists per user,
// and the balance is never negative across any committed operation. Wallets
// are mutated exclusively through the wallet service so that invariant is
// enforced in one place.
type Wallet struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	Currency  string          `db:"currency" json:"currency"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// NewWallet creates an empty wallet for a user.
func NewWallet(userID int64, currency string) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		UserID:    userID,
		Balance:   decimal.Zero,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
