// internal/service/transaction_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// CreateTransactionInput is the payload for creating a ledger record.
// Reference must be unique; Status defaults to pending.
type CreateTransactionInput struct {
	Reference      string
	SourceWalletID *int64
	DestWalletID   *int64
	Type           domain.TransactionType
	Amount         decimal.Decimal
	ItemID         *int64
	VendorID       *int64
	Location       string
	Metadata       map[string]any
	Status         domain.TransactionStatus
}

// VendorStats bundles the vendor dashboard aggregates.
type VendorStats struct {
	TokensSold       decimal.Decimal      `json:"tokens_sold"`
	UniqueVisitors   int64                `json:"unique_visitors"`
	TransactionCount int64                `json:"transaction_count"`
	TopItem          *domain.TopItem      `json:"top_item"`
	TopLocations     []domain.TopLocation `json:"top_locations"`
}

// TransactionService creates and queries ledger records and runs the
// reporting aggregations. It never mutates balances; that is the wallet
// service's job.
type TransactionService interface {
	// Create validates and inserts a new transaction record.
	Create(ctx context.Context, in CreateTransactionInput) (*domain.Transaction, error)
	// GetByReference looks a transaction up by its external reference token.
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	// MarkCompletedByID flips a transaction to completed. Returns
	// (nil, nil) when no row changed; callers treat that as a no-op.
	MarkCompletedByID(ctx context.Context, id int64) (*domain.Transaction, error)
	// CancelByID flips a pending transaction to canceled, (nil, nil) on no-op.
	CancelByID(ctx context.Context, id int64) (*domain.Transaction, error)
	// CreateManyLineItems bulk-inserts cart lines in one atomic unit.
	CreateManyLineItems(ctx context.Context, transactionID int64, lines []repository.LineItemInput) error
	// GetLineItems returns a transaction's cart lines.
	GetLineItems(ctx context.Context, transactionID int64) ([]domain.TransactionItem, error)

	// RecentByVendor lists a vendor's transactions, newest first.
	RecentByVendor(ctx context.Context, vendorID int64, f repository.VendorTxFilter) ([]domain.VendorTransaction, int64, error)
	// StatsForVendor computes the vendor dashboard aggregates.
	StatsForVendor(ctx context.Context, vendorID int64, since *time.Time) (*VendorStats, error)
	// ListByUser returns a user's transaction history.
	ListByUser(ctx context.Context, userID int64, f repository.UserTxFilter) ([]domain.UserTransaction, error)
}

type transactionService struct {
	tx           db.Transactor
	dbx          repository.DBExecutor
	transactions repository.TransactionRepository
	logger       *slog.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	tx db.Transactor,
	dbx repository.DBExecutor,
	transactions repository.TransactionRepository,
	logger *slog.Logger,
) TransactionService {
	return &transactionService{
		tx:           tx,
		dbx:          dbx,
		transactions: transactions,
		logger:       logger,
	}
}

func (s *transactionService) Create(ctx context.Context, in CreateTransactionInput) (*domain.Transaction, error) {
	if in.Reference == "" {
		return nil, fmt.Errorf("%w: reference is required", util.ErrInvalidInput)
	}
	if !domain.ValidTransactionType(in.Type) {
		return nil, fmt.Errorf("%w: unknown transaction type %q", util.ErrInvalidInput, in.Type)
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}
	switch in.Type {
	case domain.TransactionTypePurchase:
		if in.VendorID == nil {
			return nil, fmt.Errorf("%w: purchase requires a vendor", util.ErrInvalidInput)
		}
	case domain.TransactionTypeDeposit:
		if in.SourceWalletID != nil {
			return nil, fmt.Errorf("%w: deposit must not have a source wallet", util.ErrInvalidInput)
		}
	case domain.TransactionTypeWithdraw:
		if in.DestWalletID != nil {
			return nil, fmt.Errorf("%w: withdraw must not have a destination wallet", util.ErrInvalidInput)
		}
	}

	status := in.Status
	if status == "" {
		status = domain.TransactionStatusPending
	}
	if status != domain.TransactionStatusPending && status != domain.TransactionStatusCompleted {
		return nil, fmt.Errorf("%w: transactions cannot be created as %q", util.ErrInvalidInput, status)
	}

	var metadata *string
	if len(in.Metadata) > 0 {
		b, err := json.Marshal(in.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata is not serializable", util.ErrInvalidInput)
		}
		m := string(b)
		metadata = &m
	}

	var location *string
	if in.Location != "" {
		location = &in.Location
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		Reference:       in.Reference,
		SourceWalletID:  in.SourceWalletID,
		DestWalletID:    in.DestWalletID,
		Type:            in.Type,
		Amount:          in.Amount,
		ItemID:          in.ItemID,
		VendorID:        in.VendorID,
		Location:        location,
		Status:          status,
		TransactionTime: now,
		Metadata:        metadata,
		CreatedAt:       now,
	}
	if err := s.transactions.Create(ctx, s.dbx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	return s.transactions.GetByReference(ctx, s.dbx, reference)
}

func (s *transactionService) MarkCompletedByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.transactions.MarkCompletedByID(ctx, s.dbx, id)
}

func (s *transactionService) CancelByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.transactions.CancelByID(ctx, s.dbx, id)
}

func (s *transactionService) CreateManyLineItems(ctx context.Context, transactionID int64, lines []repository.LineItemInput) error {
	if len(lines) == 0 {
		return nil
	}
	return s.tx.WithinTx(ctx, func(q db.Executor) error {
		return s.transactions.CreateLineItems(ctx, q, transactionID, lines)
	})
}

func (s *transactionService) GetLineItems(ctx context.Context, transactionID int64) ([]domain.TransactionItem, error) {
	return s.transactions.GetLineItems(ctx, s.dbx, transactionID)
}

func (s *transactionService) RecentByVendor(ctx context.Context, vendorID int64, f repository.VendorTxFilter) ([]domain.VendorTransaction, int64, error) {
	transactions, err := s.transactions.RecentByVendor(ctx, s.dbx, vendorID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactions.CountByVendor(ctx, s.dbx, vendorID, f)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (s *transactionService) StatsForVendor(ctx context.Context, vendorID int64, since *time.Time) (*VendorStats, error) {
	tokensSold, err := s.transactions.TokensSoldByVendor(ctx, s.dbx, vendorID, since)
	if err != nil {
		return nil, fmt.Errorf("vendor stats: %w", err)
	}
	visitors, err := s.transactions.UniqueVisitorsByVendor(ctx, s.dbx, vendorID, since)
	if err != nil {
		return nil, fmt.Errorf("vendor stats: %w", err)
	}
	count, err := s.transactions.CountByVendor(ctx, s.dbx, vendorID, repository.VendorTxFilter{})
	if err != nil {
		return nil, fmt.Errorf("vendor stats: %w", err)
	}
	topItem, err := s.transactions.TopItemByVendor(ctx, s.dbx, vendorID, false, since)
	if err != nil {
		return nil, fmt.Errorf("vendor stats: %w", err)
	}
	topLocations, err := s.transactions.TopLocationsByVendor(ctx, s.dbx, vendorID, 3)
	if err != nil {
		return nil, fmt.Errorf("vendor stats: %w", err)
	}
	return &VendorStats{
		TokensSold:       tokensSold,
		UniqueVisitors:   visitors,
		TransactionCount: count,
		TopItem:          topItem,
		TopLocations:     topLocations,
	}, nil
}

func (s *transactionService) ListByUser(ctx context.Context, userID int64, f repository.UserTxFilter) ([]domain.UserTransaction, error) {
	return s.transactions.ListByUser(ctx, s.dbx, userID, f)
}
