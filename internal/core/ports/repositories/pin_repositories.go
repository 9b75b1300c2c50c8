package repositories

import (
	"context"
	"time"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// PinRepository stores PIN credentials. At most one active credential exists
// per user; SaveCredential deactivates any prior active credential in the same
// database transaction as the insert.
type PinRepository interface {
	FindActiveCredentialByUserID(ctx context.Context, userID string) (*domain.PinCredential, error)
	SaveCredential(ctx context.Context, cred domain.PinCredential) error
	TouchLastUsed(ctx context.Context, credentialID string, at time.Time) error
}
