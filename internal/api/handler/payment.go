// internal/api/handler/payment.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/service"
	"cashless-wallet/internal/util"
)

// PaymentHandler handles the vendor-initiated charge flow: creating charges,
// serving the pay page data, confirming and polling.
type PaymentHandler struct {
	service service.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: svc,
		logger:  logger,
	}
}

// CartLine is one cart entry in a charge request.
type CartLine struct {
	ItemID    *int64          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateChargeRequest represents the request body for charge creation.
type CreateChargeRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	ItemID   *int64          `json:"item_id"`
	Location string          `json:"location"`
	Cart     []CartLine      `json:"cart"`
	Metadata map[string]any  `json:"metadata"`
}

// CreateCharge handles the charge creation request. The caller must be a
// vendor user; the reference in the response goes into the scannable code.
// POST /payments/charges
func (h *PaymentHandler) CreateCharge(w http.ResponseWriter, r *http.Request) {
	vendorUserID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}

	cart := make([]repository.LineItemInput, 0, len(req.Cart))
	for _, line := range req.Cart {
		cart = append(cart, repository.LineItemInput{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	charge, err := h.service.Initiate(r.Context(), vendorUserID, service.InitiateChargeInput{
		Amount:   req.Amount,
		ItemID:   req.ItemID,
		Location: req.Location,
		Cart:     cart,
		Metadata: req.Metadata,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, charge)
}

// GetCharge handles the pay page data request.
// GET /payments/pay/{reference}
func (h *PaymentHandler) GetCharge(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}

	detail, err := h.service.Detail(r.Context(), reference)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, detail)
}

// ConfirmPayment handles the payer's confirmation of a scanned charge.
// Confirming an already-completed charge succeeds without a second debit.
// POST /payments/pay/{reference}
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	payerUserID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	reference := chi.URLParam(r, "reference")
	if reference == "" {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}

	status, err := h.service.Confirm(r.Context(), payerUserID, reference)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, status)
}

// GetStatus handles the status poll the vendor screen runs while waiting
// for the payer.
// GET /payments/status/{reference}
func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		respondError(h.logger, w, util.ErrInvalidInput)
		return
	}

	status, err := h.service.Status(r.Context(), reference)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, status)
}
