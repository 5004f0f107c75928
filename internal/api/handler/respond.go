// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// DefaultTimeout is the per-request timeout applied by the router.
const DefaultTimeout = 60 * time.Second

// respondJSON writes payload as a JSON response with the given status code.
func respondJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondError maps service errors to HTTP responses. Expected business
// outcomes keep their message; anything unrecognized (including storage
// failures) is logged with full context and returned as a generic 500 so
// database details never leak to clients.
func respondError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrInvalidAmount),
		util.IsError(err, util.ErrSameAccountTransfer):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrInsufficientBalance):
		statusCode = http.StatusPaymentRequired
		message = "Insufficient balance"
	case util.IsError(err, util.ErrWalletExists):
		statusCode = http.StatusConflict
		message = "Wallet already exists for user"
	case util.IsError(err, util.ErrNotFound),
		util.IsError(err, util.ErrWalletNotFound),
		util.IsError(err, util.ErrTransactionNotFound),
		util.IsError(err, util.ErrVendorNotFound),
		util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case db.IsStorageError(err):
		logger.Error("Storage failure", "error", err)
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondJSON(logger, w, statusCode, map[string]string{"error": message})
}
