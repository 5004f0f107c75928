// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"

	"cashless-wallet/internal/domain"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (name, email, role, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Role, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return &db.StorageError{Op: "create user", Err: err}
	}
	return nil
}

// GetByID retrieves a user by their id.
func (r *UserRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, name, email, role, created_at, updated_at FROM users WHERE id = $1`
	if err := q.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrUserNotFound
		}
		return nil, &db.StorageError{Op: "get user by id", Err: err}
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, name, email, role, created_at, updated_at FROM users WHERE email = $1`
	if err := q.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrUserNotFound
		}
		return nil, &db.StorageError{Op: "get user by email", Err: err}
	}
	return &user, nil
}
