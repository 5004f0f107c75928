// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"cashless-wallet/internal/domain"
)

// WalletRepository defines the interface for wallet data operations.
// Balance mutations must only be called from inside a wallet-service
// atomic unit; the repository itself does not enforce business rules.
type WalletRepository interface {
	// Create inserts a new wallet using the provided DBExecutor.
	Create(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetByID retrieves a wallet by its row id.
	GetByID(ctx context.Context, q DBExecutor, id int64) (*domain.Wallet, error)
	// GetByUserID retrieves the wallet owned by a user.
	GetByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// GetByUserIDForUpdate retrieves the wallet owned by a user and takes a
	// row lock, serializing concurrent balance mutations on the same wallet.
	// Must be called inside a transaction.
	GetByUserIDForUpdate(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// GetByIDForUpdate is GetByID with a row lock.
	GetByIDForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.Wallet, error)
	// AddToBalance applies a signed delta to a wallet's balance.
	AddToBalance(ctx context.Context, q DBExecutor, walletID int64, delta decimal.Decimal) error
	// SetBalance overwrites a wallet's balance (privileged override).
	SetBalance(ctx context.Context, q DBExecutor, walletID int64, balance decimal.Decimal) error
}
