package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// AccountReader provides read access to wallet accounts.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)
	// FindAccountByPhone resolves an account through its owning user's phone number.
	FindAccountByPhone(ctx context.Context, phoneNumber string) (*domain.Account, error)
}

// AccountRepository provides full access to wallet accounts. Balance mutation
// is deliberately absent here: balances move only through LedgerRepository so
// every change is paired with a Transaction row under the same row lock.
type AccountRepository interface {
	AccountReader
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error
	UpdateAccountLimits(ctx context.Context, accountID string, daily, monthly decimal.Decimal, userID string, now time.Time) error
}
