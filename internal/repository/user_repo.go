// internal/repository/user_repo.go
package repository

import (
	"context"

	"cashless-wallet/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// Create inserts a new user using the provided DBExecutor.
	Create(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetByID retrieves a user by their id.
	GetByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
}
