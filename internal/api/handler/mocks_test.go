// internal/api/handler/mocks_test.go
package handler

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/service"
)

// MockWalletService is a mock implementation of service.WalletService.
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletService) CreateForUser(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) AddTokens(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) RemoveTokens(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) Transfer(ctx context.Context, sourceUserID, destUserID int64, amount decimal.Decimal) (*service.TransferResult, error) {
	args := m.Called(ctx, sourceUserID, destUserID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransferResult), args.Error(1)
}

func (m *MockWalletService) SetBalance(ctx context.Context, userID int64, balance decimal.Decimal) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

// MockPaymentService is a mock implementation of service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Initiate(ctx context.Context, vendorUserID int64, in service.InitiateChargeInput) (*service.Charge, error) {
	args := m.Called(ctx, vendorUserID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Charge), args.Error(1)
}

func (m *MockPaymentService) Detail(ctx context.Context, reference string) (*service.ChargeDetail, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChargeDetail), args.Error(1)
}

func (m *MockPaymentService) Status(ctx context.Context, reference string) (*service.PaymentStatus, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaymentStatus), args.Error(1)
}

func (m *MockPaymentService) Confirm(ctx context.Context, payerUserID int64, reference string) (*service.PaymentStatus, error) {
	args := m.Called(ctx, payerUserID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaymentStatus), args.Error(1)
}

// MockTransactionService is a mock implementation of
// service.TransactionService.
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, in service.CreateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) MarkCompletedByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CancelByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateManyLineItems(ctx context.Context, transactionID int64, lines []repository.LineItemInput) error {
	args := m.Called(ctx, transactionID, lines)
	return args.Error(0)
}

func (m *MockTransactionService) GetLineItems(ctx context.Context, transactionID int64) ([]domain.TransactionItem, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionItem), args.Error(1)
}

func (m *MockTransactionService) RecentByVendor(ctx context.Context, vendorID int64, f repository.VendorTxFilter) ([]domain.VendorTransaction, int64, error) {
	args := m.Called(ctx, vendorID, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.VendorTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionService) StatsForVendor(ctx context.Context, vendorID int64, since *time.Time) (*service.VendorStats, error) {
	args := m.Called(ctx, vendorID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VendorStats), args.Error(1)
}

func (m *MockTransactionService) ListByUser(ctx context.Context, userID int64, f repository.UserTxFilter) ([]domain.UserTransaction, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserTransaction), args.Error(1)
}

func int64Ptr(v int64) *int64 { return &v }
