// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/pkg/db"
)

// stubTransactor runs the atomic unit directly against the given executor,
// so service tests exercise the exact code path that runs inside a real
// database transaction without needing a database.
type stubTransactor struct {
	q   db.Executor
	err error // returned instead of running fn, simulates a begin failure
}

func (s *stubTransactor) WithinTx(ctx context.Context, fn func(q db.Executor) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(s.q)
}

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) AddToBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, delta)
	return args.Error(0)
}

func (m *MockWalletRepository) SetBalance(ctx context.Context, q repository.DBExecutor, walletID int64, balance decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, balance)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of
// repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, q repository.DBExecutor, tx *domain.Transaction) error {
	args := m.Called(ctx, q, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, q repository.DBExecutor, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, q, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByReferenceForUpdate(ctx context.Context, q repository.DBExecutor, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, q, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SetSourceWallet(ctx context.Context, q repository.DBExecutor, id, walletID int64) error {
	args := m.Called(ctx, q, id, walletID)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkCompletedByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CancelByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CreateLineItems(ctx context.Context, q repository.DBExecutor, transactionID int64, lines []repository.LineItemInput) error {
	args := m.Called(ctx, q, transactionID, lines)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetLineItems(ctx context.Context, q repository.DBExecutor, transactionID int64) ([]domain.TransactionItem, error) {
	args := m.Called(ctx, q, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionItem), args.Error(1)
}

func (m *MockTransactionRepository) RecentByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, f repository.VendorTxFilter) ([]domain.VendorTransaction, error) {
	args := m.Called(ctx, q, vendorID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorTransaction), args.Error(1)
}

func (m *MockTransactionRepository) CountByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, f repository.VendorTxFilter) (int64, error) {
	args := m.Called(ctx, q, vendorID, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) TokensSoldByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, since *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, q, vendorID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) UniqueVisitorsByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, since *time.Time) (int64, error) {
	args := m.Called(ctx, q, vendorID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) TopItemByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, byRevenue bool, since *time.Time) (*domain.TopItem, error) {
	args := m.Called(ctx, q, vendorID, byRevenue, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TopItem), args.Error(1)
}

func (m *MockTransactionRepository) TopLocationsByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, limit int) ([]domain.TopLocation, error) {
	args := m.Called(ctx, q, vendorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopLocation), args.Error(1)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, q repository.DBExecutor, userID int64, f repository.UserTxFilter) ([]domain.UserTransaction, error) {
	args := m.Called(ctx, q, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserTransaction), args.Error(1)
}

// MockVendorRepository is a mock implementation of repository.VendorRepository.
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, q repository.DBExecutor, vendor *domain.Vendor) error {
	args := m.Called(ctx, q, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Vendor, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Vendor, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

// MockItemRepository is a mock implementation of repository.ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, q repository.DBExecutor, item *domain.Item) error {
	args := m.Called(ctx, q, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Item, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64) ([]domain.Item, error) {
	args := m.Called(ctx, q, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) IncrementPopularity(ctx context.Context, q repository.DBExecutor, itemID int64, amount int64) error {
	args := m.Called(ctx, q, itemID, amount)
	return args.Error(0)
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
