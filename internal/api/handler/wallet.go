// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"cashless-wallet/internal/service"
	"cashless-wallet/internal/util"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	service service.WalletService
	logger  *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		service: svc,
		logger:  logger,
	}
}

func (h *WalletHandler) userIDParam(r *http.Request) (int64, error) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, util.ErrInvalidInput
	}
	return userID, nil
}

// CreateWalletRequest represents the request body for wallet creation.
type CreateWalletRequest struct {
	UserID   int64  `json:"user_id"`
	Currency string `json:"currency"`
}

// CreateWallet handles the create wallet request.
// POST /wallets
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var req CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.UserID <= 0 {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}

	wallet, err := h.service.CreateForUser(r.Context(), req.UserID, req.Currency)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, wallet)
}

// GetBalance handles the get balance request. A user without a wallet has a
// balance of zero rather than a missing one.
// GET /wallets/{userID}/balance
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"balance": balance,
	})
}

// AmountRequest represents a request body carrying a single token amount.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit handles the add-tokens request.
// POST /wallets/{userID}/deposit
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}

	wallet, err := h.service.AddTokens(r.Context(), userID, req.Amount)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":     "Deposit successful",
		"user_id":     userID,
		"new_balance": wallet.Balance,
	})
}

// Withdraw handles the remove-tokens request.
// POST /wallets/{userID}/withdraw
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}

	wallet, err := h.service.RemoveTokens(r.Context(), userID, req.Amount)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":     "Withdrawal successful",
		"user_id":     userID,
		"new_balance": wallet.Balance,
	})
}

// SetBalanceRequest represents the request body for the admin balance
// override.
type SetBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

// SetBalance handles the admin set-balance request.
// POST /wallets/{userID}/balance
func (h *WalletHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req SetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}

	wallet, err := h.service.SetBalance(r.Context(), userID, req.Balance)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, wallet)
}

// TransferRequest represents the request body for transfer.
type TransferRequest struct {
	FromUserID int64           `json:"from_user_id"`
	ToUserID   int64           `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// Transfer handles the wallet-to-wallet transfer request.
// POST /transfers
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.FromUserID <= 0 || req.ToUserID <= 0 {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}

	result, err := h.service.Transfer(r.Context(), req.FromUserID, req.ToUserID, req.Amount)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":             "Transfer successful",
		"source_balance":      result.Source.Balance,
		"destination_balance": result.Destination.Balance,
	})
}
