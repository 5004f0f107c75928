// cmd/seed/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	app "cashless-wallet/internal"
	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/util"
)

// Seeds a small demo dataset: a couple of attendees with funded wallets and
// a vendor with a menu. Balances go through the wallet service so every
// token in the seed has a matching ledger record.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	application := app.NewApplication()
	if err := application.Initialize(ctx); err != nil {
		application.Logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Shutdown(ctx) }()
	logger := application.Logger

	users := []struct {
		user    *domain.User
		balance decimal.Decimal
	}{
		{domain.NewUser("Alice Martens", "alice@example.com", domain.RoleUser), decimal.NewFromInt(100)},
		{domain.NewUser("Bob Claes", "bob@example.com", domain.RoleUser), decimal.NewFromInt(50)},
		{domain.NewUser("Festival Brews", "bar@example.com", domain.RoleVendor), decimal.Zero},
	}

	var vendorUser *domain.User
	for _, entry := range users {
		if existing, err := application.UserRepository.GetByEmail(ctx, application.DB, entry.user.Email); err == nil {
			logger.Info("User already seeded, skipping", "email", existing.Email)
			if existing.Role == domain.RoleVendor {
				vendorUser = existing
			}
			continue
		} else if !util.IsError(err, util.ErrUserNotFound) {
			fatal(logger, "Failed to look up user", err)
		}

		if err := application.UserRepository.Create(ctx, application.DB, entry.user); err != nil {
			fatal(logger, "Failed to create user", err)
		}
		if _, err := application.WalletService.CreateForUser(ctx, entry.user.ID, "EUR"); err != nil {
			fatal(logger, "Failed to create wallet", err)
		}
		if entry.balance.IsPositive() {
			if _, err := application.WalletService.AddTokens(ctx, entry.user.ID, entry.balance); err != nil {
				fatal(logger, "Failed to fund wallet", err)
			}
		}
		logger.Info("Seeded user", "email", entry.user.Email, "balance", entry.balance)
		if entry.user.Role == domain.RoleVendor {
			vendorUser = entry.user
		}
	}

	if vendorUser == nil {
		logger.Info("Seed complete.")
		return
	}

	vendor, err := application.VendorRepository.GetByUserID(ctx, application.DB, vendorUser.ID)
	if util.IsError(err, util.ErrVendorNotFound) {
		location := "main square"
		vendor = &domain.Vendor{
			UserID:    &vendorUser.ID,
			Name:      "Festival Brews",
			Location:  &location,
			CreatedAt: time.Now().UTC(),
		}
		if err := application.VendorRepository.Create(ctx, application.DB, vendor); err != nil {
			fatal(logger, "Failed to create vendor", err)
		}
		logger.Info("Seeded vendor", "name", vendor.Name)

		menu := []struct {
			name  string
			price decimal.Decimal
		}{
			{"Lager", decimal.NewFromFloat(4.50)},
			{"IPA", decimal.NewFromFloat(5.50)},
			{"Soft drink", decimal.NewFromFloat(3.00)},
		}
		for _, m := range menu {
			item := &domain.Item{
				VendorID:  &vendor.ID,
				Name:      m.name,
				Price:     m.price,
				CreatedAt: time.Now().UTC(),
			}
			if err := application.ItemRepository.Create(ctx, application.DB, item); err != nil {
				fatal(logger, "Failed to create item", err)
			}
		}
		logger.Info("Seeded menu", "items", len(menu))
	} else if err != nil {
		fatal(logger, "Failed to look up vendor", err)
	} else {
		logger.Info("Vendor already seeded, skipping", "name", vendor.Name)
	}

	logger.Info("Seed complete.")
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
