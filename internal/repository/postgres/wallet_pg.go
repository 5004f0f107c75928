// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// unique_violation per the PostgreSQL error code table.
const pqUniqueViolation = "23505"

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository() repository.WalletRepository {
	return &WalletRepository{}
}

const walletColumns = `id, user_id, balance, currency, created_at, updated_at`

// Create inserts a new wallet. A duplicate wallet for the same user maps to
// util.ErrWalletExists via the unique index on user_id.
func (r *WalletRepository) Create(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, balance, currency, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		wallet.UserID, wallet.Balance, wallet.Currency, wallet.CreatedAt, wallet.UpdatedAt,
	).Scan(&wallet.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return util.ErrWalletExists
		}
		return &db.StorageError{Op: "create wallet", Err: err}
	}
	return nil
}

// GetByID retrieves a wallet by its row id.
func (r *WalletRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	if err := q.GetContext(ctx, &wallet, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, &db.StorageError{Op: "get wallet by id", Err: err}
	}
	return &wallet, nil
}

// GetByUserID retrieves the wallet owned by a user.
func (r *WalletRepository) GetByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	if err := q.GetContext(ctx, &wallet, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, &db.StorageError{Op: "get wallet by user id", Err: err}
	}
	return &wallet, nil
}

// GetByUserIDForUpdate locks the wallet row for the rest of the enclosing
// transaction, so the balance read here cannot go stale before a write.
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	if err := q.GetContext(ctx, &wallet, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, &db.StorageError{Op: "lock wallet by user id", Err: err}
	}
	return &wallet, nil
}

// GetByIDForUpdate is GetByID with a row lock.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`
	if err := q.GetContext(ctx, &wallet, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, &db.StorageError{Op: "lock wallet by id", Err: err}
	}
	return &wallet, nil
}

// AddToBalance applies a signed delta to a wallet's balance.
func (r *WalletRepository) AddToBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), walletID)
	if err != nil {
		return &db.StorageError{Op: "update wallet balance", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &db.StorageError{Op: "update wallet balance", Err: err}
	}
	if rows == 0 {
		return util.ErrWalletNotFound
	}
	return nil
}

// SetBalance overwrites a wallet's balance.
func (r *WalletRepository) SetBalance(ctx context.Context, q repository.DBExecutor, walletID int64, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, balance, time.Now().UTC(), walletID)
	if err != nil {
		return &db.StorageError{Op: "set wallet balance", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &db.StorageError{Op: "set wallet balance", Err: err}
	}
	if rows == 0 {
		return util.ErrWalletNotFound
	}
	return nil
}
