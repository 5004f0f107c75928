// internal/api/handler/transaction.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"cashless-wallet/internal/api/types"
	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/service"
	"cashless-wallet/internal/util"
)

// TransactionHandler serves the vendor dashboard and user history views of
// the ledger.
type TransactionHandler struct {
	service service.TransactionService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  logger,
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.ErrInvalidInput
	}
	return id, nil
}

func paginationParams(r *http.Request, defaultLimit int) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = defaultLimit
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func timeParam(r *http.Request, name string) *time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

func optionalIDParam(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// VendorTransactions handles the vendor dashboard transaction list.
// GET /vendors/{vendorID}/transactions
func (h *TransactionHandler) VendorTransactions(w http.ResponseWriter, r *http.Request) {
	vendorID, err := idParam(r, "vendorID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	limit, offset := paginationParams(r, 20)
	f := repository.VendorTxFilter{
		Status: domain.TransactionStatus(r.URL.Query().Get("status")),
		Type:   domain.TransactionType(r.URL.Query().Get("type")),
		Since:  timeParam(r, "since"),
		Limit:  limit,
		Offset: offset,
	}

	transactions, total, err := h.service.RecentByVendor(r.Context(), vendorID, f)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.VendorTransaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
	})
}

// VendorStats handles the vendor dashboard aggregates request.
// GET /vendors/{vendorID}/stats
func (h *TransactionHandler) VendorStats(w http.ResponseWriter, r *http.Request) {
	vendorID, err := idParam(r, "vendorID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	stats, err := h.service.StatsForVendor(r.Context(), vendorID, timeParam(r, "since"))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, stats)
}

// UserTransactions handles a user's transaction history request with
// filtering, sorting and pagination.
// GET /users/{userID}/transactions
func (h *TransactionHandler) UserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	limit, offset := paginationParams(r, 20)
	f := repository.UserTxFilter{
		Status:   domain.TransactionStatus(r.URL.Query().Get("status")),
		Type:     domain.TransactionType(r.URL.Query().Get("type")),
		VendorID: optionalIDParam(r, "vendor_id"),
		ItemID:   optionalIDParam(r, "item_id"),
		Since:    timeParam(r, "since"),
		Until:    timeParam(r, "until"),
		OrderBy:  r.URL.Query().Get("sort"),
		OrderDir: r.URL.Query().Get("dir"),
		Limit:    limit,
		Offset:   offset,
	}

	transactions, err := h.service.ListByUser(r.Context(), userID, f)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"data":   transactions,
		"limit":  limit,
		"offset": offset,
	})
}
