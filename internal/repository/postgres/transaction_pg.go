// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// TransactionRepository implements repository.TransactionRepository for
// PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

const txColumns = `id, reference, source_wallet_id, dest_wallet_id, type, amount,
	item_id, vendor_id, location, status, transaction_time, metadata, created_at`

// txColumnsT is txColumns qualified with the "t" alias for joined queries.
const txColumnsT = `t.id, t.reference, t.source_wallet_id, t.dest_wallet_id, t.type, t.amount,
	t.item_id, t.vendor_id, t.location, t.status, t.transaction_time, t.metadata, t.created_at`

// userTxSortColumns is the allow-list for caller-influenced sort keys.
// Free-text column names are an injection surface and are never
// interpolated; anything not in this map falls back to transaction_time.
var userTxSortColumns = map[string]string{
	"timestamp": "transaction_time",
	"amount":    "amount",
	"status":    "status",
	"type":      "type",
}

// Create inserts a new transaction record.
func (r *TransactionRepository) Create(ctx context.Context, q repository.DBExecutor, tx *domain.Transaction) error {
	query := `INSERT INTO transactions
		(reference, source_wallet_id, dest_wallet_id, type, amount, item_id,
		 vendor_id, location, status, transaction_time, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := q.QueryRowContext(ctx, query,
		tx.Reference, tx.SourceWalletID, tx.DestWalletID, tx.Type, tx.Amount,
		tx.ItemID, tx.VendorID, tx.Location, tx.Status, tx.TransactionTime,
		tx.Metadata, tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return &db.StorageError{Op: "create transaction", Err: err}
	}
	return nil
}

// GetByID retrieves a transaction by its row id.
func (r *TransactionRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`
	if err := q.GetContext(ctx, &tx, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrTransactionNotFound
		}
		return nil, &db.StorageError{Op: "get transaction by id", Err: err}
	}
	return &tx, nil
}

// GetByReference retrieves a transaction by its external reference token.
func (r *TransactionRepository) GetByReference(ctx context.Context, q repository.DBExecutor, reference string) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `SELECT ` + txColumns + ` FROM transactions WHERE reference = $1`
	if err := q.GetContext(ctx, &tx, query, reference); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrTransactionNotFound
		}
		return nil, &db.StorageError{Op: "get transaction by reference", Err: err}
	}
	return &tx, nil
}

// GetByReferenceForUpdate locks the transaction row for the rest of the
// enclosing transaction.
func (r *TransactionRepository) GetByReferenceForUpdate(ctx context.Context, q repository.DBExecutor, reference string) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `SELECT ` + txColumns + ` FROM transactions WHERE reference = $1 FOR UPDATE`
	if err := q.GetContext(ctx, &tx, query, reference); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrTransactionNotFound
		}
		return nil, &db.StorageError{Op: "lock transaction by reference", Err: err}
	}
	return &tx, nil
}

// SetSourceWallet backfills a previously-null source wallet.
func (r *TransactionRepository) SetSourceWallet(ctx context.Context, q repository.DBExecutor, id, walletID int64) error {
	query := `UPDATE transactions SET source_wallet_id = $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, walletID, id)
	if err != nil {
		return &db.StorageError{Op: "set transaction source wallet", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &db.StorageError{Op: "set transaction source wallet", Err: err}
	}
	if rows == 0 {
		return util.ErrTransactionNotFound
	}
	return nil
}

// MarkCompletedByID flips status to completed with a timestamp refresh.
// Returns (nil, nil) when no row changed.
func (r *TransactionRepository) MarkCompletedByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	query := `UPDATE transactions SET status = $1, transaction_time = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, domain.TransactionStatusCompleted, time.Now().UTC(), id)
	if err != nil {
		return nil, &db.StorageError{Op: "mark transaction completed", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, &db.StorageError{Op: "mark transaction completed", Err: err}
	}
	if rows == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, q, id)
}

// CancelByID flips a pending transaction to canceled. Returns (nil, nil)
// when the transaction is missing or already terminal.
func (r *TransactionRepository) CancelByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	query := `UPDATE transactions SET status = $1, transaction_time = $2
		WHERE id = $3 AND status = $4`
	result, err := q.ExecContext(ctx, query,
		domain.TransactionStatusCanceled, time.Now().UTC(), id, domain.TransactionStatusPending)
	if err != nil {
		return nil, &db.StorageError{Op: "cancel transaction", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, &db.StorageError{Op: "cancel transaction", Err: err}
	}
	if rows == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, q, id)
}

// CreateLineItems bulk-inserts cart lines for a transaction.
func (r *TransactionRepository) CreateLineItems(ctx context.Context, q repository.DBExecutor, transactionID int64, lines []repository.LineItemInput) error {
	if len(lines) == 0 {
		return nil
	}
	var (
		values []string
		args   []interface{}
	)
	args = append(args, transactionID)
	for _, line := range lines {
		quantity := line.Quantity
		if quantity < 1 {
			quantity = 1
		}
		args = append(args, line.ItemID, quantity, line.UnitPrice)
		n := len(args)
		values = append(values, fmt.Sprintf("($1, $%d, $%d, $%d, NOW())", n-2, n-1, n))
	}
	query := `INSERT INTO transaction_items (transaction_id, item_id, quantity, unit_price, created_at) VALUES ` +
		strings.Join(values, ", ")
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return &db.StorageError{Op: "create transaction line items", Err: err}
	}
	return nil
}

// GetLineItems returns the cart lines of a transaction.
func (r *TransactionRepository) GetLineItems(ctx context.Context, q repository.DBExecutor, transactionID int64) ([]domain.TransactionItem, error) {
	items := []domain.TransactionItem{}
	query := `SELECT id, transaction_id, item_id, quantity, unit_price, created_at
		FROM transaction_items WHERE transaction_id = $1 ORDER BY id`
	if err := q.SelectContext(ctx, &items, query, transactionID); err != nil {
		return nil, &db.StorageError{Op: "get transaction line items", Err: err}
	}
	return items, nil
}

// vendorTxWhere appends the optional vendor filters to a WHERE clause that
// already contains the vendor_id condition.
func vendorTxWhere(f repository.VendorTxFilter, args []interface{}) (string, []interface{}) {
	var clause string
	if f.Status != "" {
		args = append(args, f.Status)
		clause += fmt.Sprintf(" AND t.status = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		clause += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	if f.Since != nil {
		args = append(args, *f.Since)
		clause += fmt.Sprintf(" AND t.transaction_time >= $%d", len(args))
	}
	return clause, args
}

// RecentByVendor lists a vendor's transactions joined with item and payer
// info, newest first.
func (r *TransactionRepository) RecentByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, f repository.VendorTxFilter) ([]domain.VendorTransaction, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	args := []interface{}{vendorID}
	query := `
		SELECT ` + txColumnsT + `,
			i.name AS item_name,
			u.name AS user_name,
			u.email AS user_email
		FROM transactions t
		LEFT JOIN items i ON t.item_id = i.id
		LEFT JOIN wallets w ON t.source_wallet_id = w.id
		LEFT JOIN users u ON w.user_id = u.id
		WHERE t.vendor_id = $1`
	clause, args := vendorTxWhere(f, args)
	query += clause

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY t.transaction_time DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	transactions := []domain.VendorTransaction{}
	if err := q.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, &db.StorageError{Op: "list vendor transactions", Err: err}
	}
	return transactions, nil
}

// CountByVendor counts a vendor's transactions under the same filters.
func (r *TransactionRepository) CountByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, f repository.VendorTxFilter) (int64, error) {
	args := []interface{}{vendorID}
	query := `SELECT COUNT(1) FROM transactions t WHERE t.vendor_id = $1`
	clause, args := vendorTxWhere(f, args)
	query += clause

	var count int64
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, &db.StorageError{Op: "count vendor transactions", Err: err}
	}
	return count, nil
}

// TokensSoldByVendor sums completed purchase amounts for a vendor.
func (r *TransactionRepository) TokensSoldByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, since *time.Time) (decimal.Decimal, error) {
	args := []interface{}{vendorID, domain.TransactionTypePurchase, domain.TransactionStatusCompleted}
	query := `SELECT COALESCE(SUM(t.amount), 0) FROM transactions t
		WHERE t.vendor_id = $1 AND t.type = $2 AND t.status = $3`
	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(" AND t.transaction_time >= $%d", len(args))
	}

	var total decimal.Decimal
	if err := q.GetContext(ctx, &total, query, args...); err != nil {
		return decimal.Zero, &db.StorageError{Op: "sum tokens sold", Err: err}
	}
	return total, nil
}

// UniqueVisitorsByVendor counts distinct paying users for a vendor.
func (r *TransactionRepository) UniqueVisitorsByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, since *time.Time) (int64, error) {
	args := []interface{}{vendorID}
	query := `SELECT COUNT(DISTINCT w.user_id) FROM transactions t
		LEFT JOIN wallets w ON t.source_wallet_id = w.id
		WHERE t.vendor_id = $1 AND w.user_id IS NOT NULL`
	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(" AND t.transaction_time >= $%d", len(args))
	}

	var count int64
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, &db.StorageError{Op: "count unique visitors", Err: err}
	}
	return count, nil
}

// TopItemByVendor returns the vendor's best-selling item by sale count or
// revenue, or nil when the vendor has no item sales.
func (r *TransactionRepository) TopItemByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, byRevenue bool, since *time.Time) (*domain.TopItem, error) {
	orderBy := "count"
	if byRevenue {
		orderBy = "revenue"
	}
	args := []interface{}{vendorID}
	query := `SELECT t.item_id, i.name AS name,
			COUNT(1) AS count, COALESCE(SUM(t.amount), 0) AS revenue
		FROM transactions t
		LEFT JOIN items i ON t.item_id = i.id
		WHERE t.vendor_id = $1 AND t.item_id IS NOT NULL`
	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(" AND t.transaction_time >= $%d", len(args))
	}
	query += ` GROUP BY t.item_id, i.name ORDER BY ` + orderBy + ` DESC LIMIT 1`

	var top domain.TopItem
	if err := q.GetContext(ctx, &top, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &db.StorageError{Op: "get top item", Err: err}
	}
	return &top, nil
}

// TopLocationsByVendor ranks completed sales by free-text location.
func (r *TransactionRepository) TopLocationsByVendor(ctx context.Context, q repository.DBExecutor, vendorID int64, limit int) ([]domain.TopLocation, error) {
	if limit <= 0 {
		limit = 3
	}
	query := `SELECT t.location,
			COUNT(1) AS transaction_count,
			COALESCE(SUM(t.amount), 0) AS total_tokens
		FROM transactions t
		WHERE t.vendor_id = $1 AND t.status = $2
			AND t.location IS NOT NULL AND t.location <> ''
		GROUP BY t.location
		ORDER BY transaction_count DESC
		LIMIT $3`

	locations := []domain.TopLocation{}
	err := q.SelectContext(ctx, &locations, query, vendorID, domain.TransactionStatusCompleted, limit)
	if err != nil {
		return nil, &db.StorageError{Op: "get top locations", Err: err}
	}
	return locations, nil
}

// ListByUser returns a user's transaction history (as source or
// destination) joined with item and vendor info.
func (r *TransactionRepository) ListByUser(ctx context.Context, q repository.DBExecutor, userID int64, f repository.UserTxFilter) ([]domain.UserTransaction, error) {
	args := []interface{}{userID}
	query := `
		SELECT ` + txColumnsT + `,
			i.name AS item_name,
			i.price AS item_price,
			v.name AS vendor_name,
			v.location AS vendor_location
		FROM transactions t
		LEFT JOIN items i ON t.item_id = i.id
		LEFT JOIN vendors v ON t.vendor_id = v.id
		WHERE (t.source_wallet_id IN (SELECT id FROM wallets WHERE user_id = $1)
			OR t.dest_wallet_id IN (SELECT id FROM wallets WHERE user_id = $1))`

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND t.status = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	if f.VendorID != nil {
		args = append(args, *f.VendorID)
		query += fmt.Sprintf(" AND t.vendor_id = $%d", len(args))
	}
	if f.ItemID != nil {
		args = append(args, *f.ItemID)
		query += fmt.Sprintf(" AND t.item_id = $%d", len(args))
	}
	if f.Since != nil {
		args = append(args, *f.Since)
		query += fmt.Sprintf(" AND t.transaction_time >= $%d", len(args))
	}
	if f.Until != nil {
		args = append(args, *f.Until)
		query += fmt.Sprintf(" AND t.transaction_time <= $%d", len(args))
	}

	// Sort key must come from the allow-list; placeholders cannot carry
	// identifiers, so validation happens before interpolation.
	orderColumn, ok := userTxSortColumns[f.OrderBy]
	if !ok {
		orderColumn = "transaction_time"
	}
	orderDir := "DESC"
	if strings.EqualFold(f.OrderDir, "ASC") {
		orderDir = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY t.%s %s", orderColumn, orderDir)

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	transactions := []domain.UserTransaction{}
	if err := q.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, &db.StorageError{Op: "list user transactions", Err: err}
	}
	return transactions, nil
}
