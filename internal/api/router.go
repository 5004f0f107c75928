// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cashless-wallet/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	walletHandler *handler.WalletHandler,
	paymentHandler *handler.PaymentHandler,
	transactionHandler *handler.TransactionHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Wallet API routes
	r.Route("/wallets", func(r chi.Router) {
		r.Post("/", walletHandler.CreateWallet)
		r.Get("/{userID}/balance", walletHandler.GetBalance)
		r.Post("/{userID}/balance", walletHandler.SetBalance)
		r.Post("/{userID}/deposit", walletHandler.Deposit)
		r.Post("/{userID}/withdraw", walletHandler.Withdraw)
	})

	// Transfer is a separate top-level endpoint as it involves two wallets
	r.Post("/transfers", walletHandler.Transfer)

	// Payment flow: charge creation and confirmation need the caller's
	// identity; the pay page and status poll are reachable by reference
	// alone.
	r.Route("/payments", func(r chi.Router) {
		r.With(handler.RequireUserID).Post("/charges", paymentHandler.CreateCharge)
		r.Get("/pay/{reference}", paymentHandler.GetCharge)
		r.With(handler.RequireUserID).Post("/pay/{reference}", paymentHandler.ConfirmPayment)
		r.Get("/status/{reference}", paymentHandler.GetStatus)
	})

	// Ledger views
	r.Route("/vendors/{vendorID}", func(r chi.Router) {
		r.Get("/transactions", transactionHandler.VendorTransactions)
		r.Get("/stats", transactionHandler.VendorStats)
	})
	r.Get("/users/{userID}/transactions", transactionHandler.UserTransactions)

	return r
}
