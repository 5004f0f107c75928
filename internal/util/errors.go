// internal/util/errors.go
package util

import "errors"

// Expected business outcomes. The HTTP layer maps these to user-facing
// responses; anything else is treated as an internal failure and logged.
var (
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrNotFound            = errors.New("resource not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrVendorNotFound      = errors.New("vendor not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWalletExists        = errors.New("wallet already exists for user")
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
