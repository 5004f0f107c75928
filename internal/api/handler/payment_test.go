// internal/api/handler/payment_test.go
package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/service"
	"cashless-wallet/internal/util"
)

func newPaymentTestRouter(svc *MockPaymentService) http.Handler {
	h := NewPaymentHandler(svc, testLogger())
	r := chi.NewRouter()
	r.With(RequireUserID).Post("/payments/charges", h.CreateCharge)
	r.Get("/payments/pay/{reference}", h.GetCharge)
	r.With(RequireUserID).Post("/payments/pay/{reference}", h.ConfirmPayment)
	r.Get("/payments/status/{reference}", h.GetStatus)
	return r
}

func TestCreateChargeHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockPaymentService)
		charge := &service.Charge{
			Reference: "ref-1",
			ScanURL:   "http://localhost:8080/payments/pay/ref-1",
			Transaction: &domain.Transaction{
				ID: 1, Reference: "ref-1", Status: domain.TransactionStatusPending,
			},
		}
		svc.On("Initiate", mock.Anything, int64(50), mock.MatchedBy(func(in service.InitiateChargeInput) bool {
			return in.Amount.Equal(decimal.NewFromFloat(12.5)) && in.Location == "main stage"
		})).Return(charge, nil).Once()

		body := `{"amount":"12.5","location":"main stage"}`
		req := httptest.NewRequest(http.MethodPost, "/payments/charges", strings.NewReader(body))
		req.Header.Set(UserIDHeader, "50")
		rec := httptest.NewRecorder()
		newPaymentTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "scan_url")
		svc.AssertExpectations(t)
	})

	t.Run("MissingIdentityIs401", func(t *testing.T) {
		svc := new(MockPaymentService)

		req := httptest.NewRequest(http.MethodPost, "/payments/charges", strings.NewReader(`{"amount":"12.5"}`))
		rec := httptest.NewRecorder()
		newPaymentTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "Initiate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NonVendorIs404", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Initiate", mock.Anything, int64(50), mock.Anything).
			Return(nil, util.ErrVendorNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/payments/charges", strings.NewReader(`{"amount":"12.5"}`))
		req.Header.Set(UserIDHeader, "50")
		rec := httptest.NewRecorder()
		newPaymentTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestConfirmPaymentHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockPaymentService)
		balance := decimal.NewFromFloat(212.5)
		status := &service.PaymentStatus{
			Reference:     "ref-1",
			Status:        domain.TransactionStatusCompleted,
			VendorBalance: &balance,
		}
		svc.On("Confirm", mock.Anything, int64(1), "ref-1").Return(status, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/payments/pay/ref-1", nil)
		req.Header.Set(UserIDHeader, "1")
		rec := httptest.NewRecorder()
		newPaymentTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"completed"`)
		svc.AssertExpectations(t)
	})

	t.Run("InsufficientBalanceIs402", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Confirm", mock.Anything, int64(1), "ref-1").
			Return(nil, util.ErrInsufficientBalance).Once()

		req := httptest.NewRequest(http.MethodPost, "/payments/pay/ref-1", nil)
		req.Header.Set(UserIDHeader, "1")
		rec := httptest.NewRecorder()
		newPaymentTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("BadIdentityHeaderIs401", func(t *testing.T) {
		svc := new(MockPaymentService)

		req := httptest.NewRequest(http.MethodPost, "/payments/pay/ref-1", nil)
		req.Header.Set(UserIDHeader, "not-a-number")
		rec := httptest.NewRecorder()
		newPaymentTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetStatusHandler(t *testing.T) {
	t.Run("Pending", func(t *testing.T) {
		svc := new(MockPaymentService)
		status := &service.PaymentStatus{Reference: "ref-1", Status: domain.TransactionStatusPending}
		svc.On("Status", mock.Anything, "ref-1").Return(status, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/payments/status/ref-1", nil)
		rec := httptest.NewRecorder()
		newPaymentTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"pending"`)
		svc.AssertExpectations(t)
	})

	t.Run("UnknownReferenceIs404", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Status", mock.Anything, "missing").
			Return(nil, util.ErrTransactionNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/payments/status/missing", nil)
		rec := httptest.NewRecorder()
		newPaymentTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestGetChargeHandler(t *testing.T) {
	svc := new(MockPaymentService)
	detail := &service.ChargeDetail{
		Transaction: &domain.Transaction{ID: 1, Reference: "ref-1", Status: domain.TransactionStatusPending},
		Vendor:      &domain.Vendor{ID: 3, Name: "Beer Stand"},
		Lines:       []domain.TransactionItem{{ID: 1, TransactionID: 1, ItemID: int64Ptr(7), Quantity: 2, UnitPrice: decimal.NewFromFloat(5)}},
	}
	svc.On("Detail", mock.Anything, "ref-1").Return(detail, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/payments/pay/ref-1", nil)
	rec := httptest.NewRecorder()
	newPaymentTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Beer Stand")
	svc.AssertExpectations(t)
}
