// internal/api/handler/wallet_test.go
package handler

import (
	"encoding/json"
	"io"
	"log/slog"
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWalletTestRouter(svc *MockWalletService) http.Handler {
	h := NewWalletHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Post("/wallets", h.CreateWallet)
	r.Get("/wallets/{userID}/balance", h.GetBalance)
	r.Post("/wallets/{userID}/balance", h.SetBalance)
	r.Post("/wallets/{userID}/deposit", h.Deposit)
	r.Post("/wallets/{userID}/withdraw", h.Withdraw)
	r.Post("/transfers", h.Transfer)
	return r
}

func TestGetBalanceHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockWalletService)
		svc.On("GetBalance", mock.Anything, int64(7)).Return(decimal.NewFromFloat(42.5), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/wallets/7/balance", nil)
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]json.RawMessage
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.JSONEq(t, `"42.5"`, string(body["balance"]))
		svc.AssertExpectations(t)
	})

	t.Run("BadUserID", func(t *testing.T) {
		svc := new(MockWalletService)

		req := httptest.NewRequest(http.MethodGet, "/wallets/abc/balance", nil)
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
	})
}

func TestCreateWalletHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockWalletService)
		wallet := &domain.Wallet{ID: 1, UserID: 7, Currency: "EUR"}
		svc.On("CreateForUser", mock.Anything, int64(7), "EUR").Return(wallet, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/wallets", strings.NewReader(`{"user_id":7,"currency":"EUR"}`))
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("DuplicateConflicts", func(t *testing.T) {
		svc := new(MockWalletService)
		svc.On("CreateForUser", mock.Anything, int64(7), "").Return(nil, util.ErrWalletExists).Once()

		req := httptest.NewRequest(http.MethodPost, "/wallets", strings.NewReader(`{"user_id":7}`))
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		svc := new(MockWalletService)

		req := httptest.NewRequest(http.MethodPost, "/wallets", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateForUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDepositHandler(t *testing.T) {
	svc := new(MockWalletService)
	wallet := &domain.Wallet{ID: 1, UserID: 7, Balance: decimal.NewFromFloat(60), Currency: "EUR"}
	svc.On("AddTokens", mock.Anything, int64(7), mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(decimal.NewFromFloat(10))
	})).Return(wallet, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/wallets/7/deposit", strings.NewReader(`{"amount":"10"}`))
	rec := httptest.NewRecorder()
	newWalletTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestWithdrawHandler(t *testing.T) {
	t.Run("InsufficientBalanceIs402", func(t *testing.T) {
		svc := new(MockWalletService)
		svc.On("RemoveTokens", mock.Anything, int64(7), mock.Anything).
			Return(nil, util.ErrInsufficientBalance).Once()

		req := httptest.NewRequest(http.MethodPost, "/wallets/7/withdraw", strings.NewReader(`{"amount":"999"}`))
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidAmountIs400", func(t *testing.T) {
		svc := new(MockWalletService)
		svc.On("RemoveTokens", mock.Anything, int64(7), mock.Anything).
			Return(nil, util.ErrInvalidAmount).Once()

		req := httptest.NewRequest(http.MethodPost, "/wallets/7/withdraw", strings.NewReader(`{"amount":"-1"}`))
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestTransferHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockWalletService)
		result := &service.TransferResult{
			Source:      &domain.Wallet{ID: 1, UserID: 7, Balance: decimal.NewFromFloat(60), Currency: "EUR"},
			Destination: &domain.Wallet{ID: 2, UserID: 8, Balance: decimal.NewFromFloat(90), Currency: "EUR"},
		}
		svc.On("Transfer", mock.Anything, int64(7), int64(8), mock.MatchedBy(func(a decimal.Decimal) bool {
			return a.Equal(decimal.NewFromFloat(40))
		})).Return(result, nil).Once()

		body := `{"from_user_id":7,"to_user_id":8,"amount":"40"}`
		req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("SelfTransferIs400", func(t *testing.T) {
		svc := new(MockWalletService)
		svc.On("Transfer", mock.Anything, int64(7), int64(7), mock.Anything).
			Return(nil, util.ErrSameAccountTransfer).Once()

		body := `{"from_user_id":7,"to_user_id":7,"amount":"40"}`
		req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("MissingUserIDs", func(t *testing.T) {
		svc := new(MockWalletService)

		req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(`{"amount":"40"}`))
		rec := httptest.NewRecorder()
		newWalletTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
