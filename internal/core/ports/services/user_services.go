package services

import (
	"context"
	"time"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// RegisterParams carries everything onboarding needs: the user record, the
// wallet account and the PIN credential are all created from one request.
type RegisterParams struct {
	PhoneNumber string
	FirstName   string
	LastName    string
	Pin         string
	ConfirmPin  string
}

// AuthResult is a signed session for a registered or logged-in user.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// RecipientInfo is the public view of a transfer recipient, safe to show the
// sender before they confirm.
type RecipientInfo struct {
	Name        string
	PhoneNumber string
}

type UserSvcFacade interface {
	// Register creates the user, a zero-balance wallet account in the default
	// currency and the PIN credential, then returns a session token. A phone
	// number already registered is apperrors.ErrDuplicate.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates by phone number and PIN. Unknown phone and wrong PIN
	// both surface as apperrors.ErrInvalidPin so the response does not reveal
	// which part failed.
	Login(ctx context.Context, phoneNumber, pin string) (*AuthResult, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ValidateRecipient checks that the phone number belongs to a registered
	// user with an active wallet. Returns apperrors.ErrRecipientNotFound
	// otherwise.
	ValidateRecipient(ctx context.Context, phoneNumber string) (*RecipientInfo, error)
}
