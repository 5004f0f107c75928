// internal/service/payment_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cashless-wallet/internal/cache"
	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// InitiateChargeInput describes a vendor-initiated charge.
type InitiateChargeInput struct {
	Amount   decimal.Decimal
	ItemID   *int64
	Location string
	Cart     []repository.LineItemInput
	Metadata map[string]any
}

// Charge is the result of initiating a payment: the reference token and
// the URL to embed in a scannable code. QR image rendering happens in the
// client; this service only produces the URL string.
type Charge struct {
	Reference   string              `json:"reference"`
	ScanURL     string              `json:"scan_url"`
	Transaction *domain.Transaction `json:"transaction"`
}

// PaymentStatus is what status polling and confirmation return. The vendor
// wallet's balance is only exposed once the payment completed.
type PaymentStatus struct {
	Reference     string                   `json:"reference"`
	Status        domain.TransactionStatus `json:"status"`
	VendorBalance *decimal.Decimal         `json:"vendor_balance,omitempty"`
}

// ChargeDetail is everything the pay page needs to render a charge.
type ChargeDetail struct {
	Transaction *domain.Transaction      `json:"transaction"`
	Vendor      *domain.Vendor           `json:"vendor"`
	Item        *domain.Item             `json:"item"`
	Lines       []domain.TransactionItem `json:"lines"`
}

// PaymentService orchestrates the vendor-initiated charge flow:
// Initiate creates a pending transaction and a scannable reference,
// Confirm atomically debits the payer, credits the vendor and completes
// the transaction. Confirm is idempotent: re-confirming a completed charge
// returns success without a second debit.
type PaymentService interface {
	Initiate(ctx context.Context, vendorUserID int64, in InitiateChargeInput) (*Charge, error)
	Detail(ctx context.Context, reference string) (*ChargeDetail, error)
	Status(ctx context.Context, reference string) (*PaymentStatus, error)
	Confirm(ctx context.Context, payerUserID int64, reference string) (*PaymentStatus, error)
}

type paymentService struct {
	tx           db.Transactor
	dbx          repository.DBExecutor
	wallets      repository.WalletRepository
	transactions repository.TransactionRepository
	vendors      repository.VendorRepository
	items        repository.ItemRepository
	txService    TransactionService
	cache        *cache.Cache
	logger       *slog.Logger
	baseURL      string
}

// NewPaymentService creates a new PaymentService. baseURL is the public
// address scan URLs are built from, e.g. "https://pay.example.com".
func NewPaymentService(
	tx db.Transactor,
	dbx repository.DBExecutor,
	wallets repository.WalletRepository,
	transactions repository.TransactionRepository,
	vendors repository.VendorRepository,
	items repository.ItemRepository,
	txService TransactionService,
	c *cache.Cache,
	logger *slog.Logger,
	baseURL string,
) PaymentService {
	return &paymentService{
		tx:           tx,
		dbx:          dbx,
		wallets:      wallets,
		transactions: transactions,
		vendors:      vendors,
		items:        items,
		txService:    txService,
		cache:        c,
		logger:       logger,
		baseURL:      baseURL,
	}
}

func (s *paymentService) Initiate(ctx context.Context, vendorUserID int64, in InitiateChargeInput) (*Charge, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	vendor, err := s.vendors.GetByUserID(ctx, s.dbx, vendorUserID)
	if err != nil {
		return nil, fmt.Errorf("initiate charge: %w", err)
	}
	destWallet, err := s.wallets.GetByUserID(ctx, s.dbx, vendorUserID)
	if err != nil {
		return nil, fmt.Errorf("initiate charge: vendor wallet: %w", err)
	}

	txn, err := s.txService.Create(ctx, CreateTransactionInput{
		Reference:    uuid.NewString(),
		DestWalletID: &destWallet.ID,
		Type:         domain.TransactionTypePurchase,
		Amount:       in.Amount,
		ItemID:       in.ItemID,
		VendorID:     &vendor.ID,
		Location:     in.Location,
		Metadata:     in.Metadata,
		Status:       domain.TransactionStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("initiate charge: %w", err)
	}

	// Line items are detail, not ledger state: the charge stays valid even
	// if persisting them fails.
	if err := s.txService.CreateManyLineItems(ctx, txn.ID, in.Cart); err != nil {
		s.logger.Warn("Failed to persist charge line items",
			"transaction_id", txn.ID, "reference", txn.Reference, "error", err)
	}

	return &Charge{
		Reference:   txn.Reference,
		ScanURL:     s.scanURL(txn.Reference),
		Transaction: txn,
	}, nil
}

func (s *paymentService) Detail(ctx context.Context, reference string) (*ChargeDetail, error) {
	txn, err := s.transactions.GetByReference(ctx, s.dbx, reference)
	if err != nil {
		return nil, err
	}

	detail := &ChargeDetail{Transaction: txn}
	if txn.VendorID != nil {
		if detail.Vendor, err = s.vendors.GetByID(ctx, s.dbx, *txn.VendorID); err != nil && !util.IsError(err, util.ErrVendorNotFound) {
			return nil, err
		}
	}
	if txn.ItemID != nil {
		if detail.Item, err = s.items.GetByID(ctx, s.dbx, *txn.ItemID); err != nil && !util.IsError(err, util.ErrNotFound) {
			return nil, err
		}
	}
	if detail.Lines, err = s.transactions.GetLineItems(ctx, s.dbx, txn.ID); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *paymentService) Status(ctx context.Context, reference string) (*PaymentStatus, error) {
	var cached PaymentStatus
	if hit, err := s.cache.Get(ctx, cache.PaymentStatusKey(reference), &cached); err != nil {
		s.logger.Warn("Payment status cache read failed", "reference", reference, "error", err)
	} else if hit {
		return &cached, nil
	}

	txn, err := s.transactions.GetByReference(ctx, s.dbx, reference)
	if err != nil {
		return nil, err
	}

	status := &PaymentStatus{Reference: reference, Status: txn.Status}
	if txn.Status == domain.TransactionStatusCompleted && txn.DestWalletID != nil {
		dest, err := s.wallets.GetByID(ctx, s.dbx, *txn.DestWalletID)
		if err == nil {
			status.VendorBalance = &dest.Balance
		} else if !util.IsError(err, util.ErrWalletNotFound) {
			return nil, err
		}
	}

	// Only terminal states are cached; a pending status can change at any
	// moment.
	if txn.Status != domain.TransactionStatusPending {
		if err := s.cache.Set(ctx, cache.PaymentStatusKey(reference), status, cache.StatusTTL); err != nil {
			s.logger.Warn("Payment status cache write failed", "reference", reference, "error", err)
		}
	}
	return status, nil
}

func (s *paymentService) Confirm(ctx context.Context, payerUserID int64, reference string) (*PaymentStatus, error) {
	var (
		result       *PaymentStatus
		mutated      bool
		itemID       *int64
		vendorUserID *int64
	)

	err := s.tx.WithinTx(ctx, func(q db.Executor) error {
		// First read inside the atomic section: the idempotence check and
		// the mutation below cannot be split by a concurrent confirm.
		txn, err := s.transactions.GetByReferenceForUpdate(ctx, q, reference)
		if err != nil {
			return err
		}

		if txn.Status == domain.TransactionStatusCompleted {
			result = &PaymentStatus{Reference: reference, Status: txn.Status}
			if txn.DestWalletID != nil {
				dest, err := s.wallets.GetByID(ctx, q, *txn.DestWalletID)
				if err != nil {
					return err
				}
				result.VendorBalance = &dest.Balance
			}
			return nil
		}
		if txn.Status == domain.TransactionStatusCanceled {
			return fmt.Errorf("%w: charge was canceled", util.ErrInvalidInput)
		}

		payerWallet, err := s.wallets.GetByUserIDForUpdate(ctx, q, payerUserID)
		if err != nil {
			return err
		}
		if payerWallet.Balance.LessThan(txn.Amount) {
			return util.ErrInsufficientBalance
		}

		if err := s.wallets.AddToBalance(ctx, q, payerWallet.ID, txn.Amount.Neg()); err != nil {
			return fmt.Errorf("confirm payment: debit payer: %w", err)
		}

		result = &PaymentStatus{Reference: reference, Status: domain.TransactionStatusCompleted}
		if txn.DestWalletID != nil {
			if err := s.wallets.AddToBalance(ctx, q, *txn.DestWalletID, txn.Amount); err != nil {
				return fmt.Errorf("confirm payment: credit vendor: %w", err)
			}
			dest, err := s.wallets.GetByID(ctx, q, *txn.DestWalletID)
			if err != nil {
				return fmt.Errorf("confirm payment: re-fetch vendor wallet: %w", err)
			}
			result.VendorBalance = &dest.Balance
			vendorUserID = &dest.UserID
		}

		if err := s.transactions.SetSourceWallet(ctx, q, txn.ID, payerWallet.ID); err != nil {
			return fmt.Errorf("confirm payment: set source: %w", err)
		}
		if _, err := s.transactions.MarkCompletedByID(ctx, q, txn.ID); err != nil {
			return fmt.Errorf("confirm payment: complete: %w", err)
		}

		mutated = true
		itemID = txn.ItemID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mutated {
		// Popularity is reporting data; a failure here must not undo the
		// payment.
		if itemID != nil {
			if err := s.items.IncrementPopularity(ctx, s.dbx, *itemID, 1); err != nil {
				s.logger.Warn("Failed to increment item popularity",
					"item_id", *itemID, "reference", reference, "error", err)
			}
		}

		keys := []string{cache.WalletKey(payerUserID), cache.PaymentStatusKey(reference)}
		if vendorUserID != nil {
			keys = append(keys, cache.WalletKey(*vendorUserID))
		}
		if err := s.cache.Delete(ctx, keys...); err != nil {
			s.logger.Warn("Cache invalidation failed after payment", "reference", reference, "error", err)
		}
	}
	return result, nil
}

func (s *paymentService) scanURL(reference string) string {
	return s.baseURL + "/payments/pay/" + url.PathEscape(reference)
}
