package repositories

import (
	"context"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// UserReader provides read access to users.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)
}

// UserRepository provides full access to users.
type UserRepository interface {
	UserReader
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
}
