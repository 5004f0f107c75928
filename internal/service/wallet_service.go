// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cashless-wallet/internal/cache"
	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// TransferResult carries both wallets' post-transfer state.
type TransferResult struct {
	Source      *domain.Wallet `json:"source"`
	Destination *domain.Wallet `json:"destination"`
}

// WalletService owns every balance mutation in the system and enforces the
// non-negative balance invariant. Each mutating operation runs its balance
// check and its write inside one atomic unit with the wallet row locked, so
// two concurrent withdrawals cannot both pass the check before either
// writes.
type WalletService interface {
	// GetBalance returns a user's balance, or zero if no wallet exists.
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	// CreateForUser creates the user's wallet. One wallet per user.
	CreateForUser(ctx context.Context, userID int64, currency string) (*domain.Wallet, error)
	// AddTokens credits a wallet and records a completed deposit.
	AddTokens(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error)
	// RemoveTokens debits a wallet and records a completed withdrawal.
	RemoveTokens(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error)
	// Transfer moves tokens between two users' wallets atomically.
	Transfer(ctx context.Context, sourceUserID, destUserID int64, amount decimal.Decimal) (*TransferResult, error)
	// SetBalance is a privileged override with no debit/credit pairing.
	SetBalance(ctx context.Context, userID int64, balance decimal.Decimal) (*domain.Wallet, error)
}

type walletService struct {
	tx           db.Transactor
	dbx          repository.DBExecutor // non-transactional reads
	wallets      repository.WalletRepository
	transactions repository.TransactionRepository
	cache        *cache.Cache
	logger       *slog.Logger
}

// NewWalletService creates a new WalletService.
func NewWalletService(
	tx db.Transactor,
	dbx repository.DBExecutor,
	wallets repository.WalletRepository,
	transactions repository.TransactionRepository,
	c *cache.Cache,
	logger *slog.Logger,
) WalletService {
	return &walletService{
		tx:           tx,
		dbx:          dbx,
		wallets:      wallets,
		transactions: transactions,
		cache:        c,
		logger:       logger,
	}
}

func (s *walletService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var cached decimal.Decimal
	if hit, err := s.cache.Get(ctx, cache.WalletKey(userID), &cached); err != nil {
		s.logger.Warn("Wallet cache read failed", "user_id", userID, "error", err)
	} else if hit {
		return cached, nil
	}

	wallet, err := s.wallets.GetByUserID(ctx, s.dbx, userID)
	if err != nil {
		if util.IsError(err, util.ErrWalletNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}

	if err := s.cache.Set(ctx, cache.WalletKey(userID), wallet.Balance, cache.BalanceTTL); err != nil {
		s.logger.Warn("Wallet cache write failed", "user_id", userID, "error", err)
	}
	return wallet.Balance, nil
}

func (s *walletService) CreateForUser(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	if currency == "" {
		currency = "EUR"
	}

	wallet := domain.NewWallet(userID, currency)
	err := s.tx.WithinTx(ctx, func(q db.Executor) error {
		_, err := s.wallets.GetByUserID(ctx, q, userID)
		if err == nil {
			return util.ErrWalletExists
		}
		if !util.IsError(err, util.ErrWalletNotFound) {
			return fmt.Errorf("create wallet: check existing: %w", err)
		}
		// The unique index on user_id closes the remaining race; the
		// repository maps that violation to ErrWalletExists too.
		return s.wallets.Create(ctx, q, wallet)
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) AddTokens(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	var updated *domain.Wallet
	err := s.tx.WithinTx(ctx, func(q db.Executor) error {
		wallet, err := s.wallets.GetByUserIDForUpdate(ctx, q, userID)
		if err != nil {
			return fmt.Errorf("add tokens: %w", err)
		}
		if err := s.wallets.AddToBalance(ctx, q, wallet.ID, amount); err != nil {
			return fmt.Errorf("add tokens: %w", err)
		}
		txn := s.newLedgerEntry(domain.TransactionTypeDeposit, amount, nil, &wallet.ID)
		if err := s.transactions.Create(ctx, q, txn); err != nil {
			return fmt.Errorf("add tokens: record transaction: %w", err)
		}
		updated, err = s.wallets.GetByID(ctx, q, wallet.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBalances(ctx, userID)
	return updated, nil
}

func (s *walletService) RemoveTokens(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	var updated *domain.Wallet
	err := s.tx.WithinTx(ctx, func(q db.Executor) error {
		wallet, err := s.wallets.GetByUserIDForUpdate(ctx, q, userID)
		if err != nil {
			return fmt.Errorf("remove tokens: %w", err)
		}
		if wallet.Balance.LessThan(amount) {
			return util.ErrInsufficientBalance
		}
		if err := s.wallets.AddToBalance(ctx, q, wallet.ID, amount.Neg()); err != nil {
			return fmt.Errorf("remove tokens: %w", err)
		}
		txn := s.newLedgerEntry(domain.TransactionTypeWithdraw, amount, &wallet.ID, nil)
		if err := s.transactions.Create(ctx, q, txn); err != nil {
			return fmt.Errorf("remove tokens: record transaction: %w", err)
		}
		updated, err = s.wallets.GetByID(ctx, q, wallet.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBalances(ctx, userID)
	return updated, nil
}

func (s *walletService) Transfer(ctx context.Context, sourceUserID, destUserID int64, amount decimal.Decimal) (*TransferResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}
	if sourceUserID == destUserID {
		return nil, util.ErrSameAccountTransfer
	}

	var result *TransferResult
	err := s.tx.WithinTx(ctx, func(q db.Executor) error {
		source, err := s.wallets.GetByUserID(ctx, q, sourceUserID)
		if err != nil {
			return fmt.Errorf("transfer: source: %w", err)
		}
		dest, err := s.wallets.GetByUserID(ctx, q, destUserID)
		if err != nil {
			return fmt.Errorf("transfer: destination: %w", err)
		}

		// Lock both rows in ascending id order so two opposite transfers
		// cannot deadlock, then re-read the source balance under the lock.
		first, second := source, dest
		if second.ID < first.ID {
			first, second = second, first
		}
		if first, err = s.wallets.GetByIDForUpdate(ctx, q, first.ID); err != nil {
			return fmt.Errorf("transfer: lock: %w", err)
		}
		if second, err = s.wallets.GetByIDForUpdate(ctx, q, second.ID); err != nil {
			return fmt.Errorf("transfer: lock: %w", err)
		}
		if first.ID == source.ID {
			source = first
		} else {
			source = second
		}

		if source.Balance.LessThan(amount) {
			return util.ErrInsufficientBalance
		}
		if err := s.wallets.AddToBalance(ctx, q, source.ID, amount.Neg()); err != nil {
			return fmt.Errorf("transfer: debit: %w", err)
		}
		if err := s.wallets.AddToBalance(ctx, q, dest.ID, amount); err != nil {
			return fmt.Errorf("transfer: credit: %w", err)
		}

		txn := s.newLedgerEntry(domain.TransactionTypeTransfer, amount, &source.ID, &dest.ID)
		if err := s.transactions.Create(ctx, q, txn); err != nil {
			return fmt.Errorf("transfer: record transaction: %w", err)
		}

		updatedSource, err := s.wallets.GetByID(ctx, q, source.ID)
		if err != nil {
			return fmt.Errorf("transfer: re-fetch source: %w", err)
		}
		updatedDest, err := s.wallets.GetByID(ctx, q, dest.ID)
		if err != nil {
			return fmt.Errorf("transfer: re-fetch destination: %w", err)
		}
		result = &TransferResult{Source: updatedSource, Destination: updatedDest}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBalances(ctx, sourceUserID, destUserID)
	return result, nil
}

func (s *walletService) SetBalance(ctx context.Context, userID int64, balance decimal.Decimal) (*domain.Wallet, error) {
	if balance.IsNegative() {
		return nil, util.ErrInvalidAmount
	}

	var updated *domain.Wallet
	err := s.tx.WithinTx(ctx, func(q db.Executor) error {
		wallet, err := s.wallets.GetByUserIDForUpdate(ctx, q, userID)
		if err != nil {
			return fmt.Errorf("set balance: %w", err)
		}
		if err := s.wallets.SetBalance(ctx, q, wallet.ID, balance); err != nil {
			return fmt.Errorf("set balance: %w", err)
		}
		updated, err = s.wallets.GetByID(ctx, q, wallet.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBalances(ctx, userID)
	return updated, nil
}

// newLedgerEntry builds the already-completed transaction recorded for
// instantaneous operations (deposit/withdraw/transfer).
func (s *walletService) newLedgerEntry(txType domain.TransactionType, amount decimal.Decimal, sourceWalletID, destWalletID *int64) *domain.Transaction {
	now := time.Now().UTC()
	return &domain.Transaction{
		Reference:       uuid.NewString(),
		SourceWalletID:  sourceWalletID,
		DestWalletID:    destWalletID,
		Type:            txType,
		Amount:          amount,
		Status:          domain.TransactionStatusCompleted,
		TransactionTime: now,
		CreatedAt:       now,
	}
}

// invalidateBalances drops cached balances after a commit. Best-effort:
// the TTL bounds staleness if Redis is unreachable.
func (s *walletService) invalidateBalances(ctx context.Context, userIDs ...int64) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, cache.WalletKey(id))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Wallet cache invalidation failed", "user_ids", userIDs, "error", err)
	}
}
