package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// WithdrawParams sends wallet funds to an external bank account. The debit is
// taken before the payout is initiated; a payout that fails to initiate is
// compensated with a refund credit under the same reference.
type WithdrawParams struct {
	UserID        string
	Amount        decimal.Decimal
	BankCode      string
	AccountNumber string
	AccountName   string
	Description   string
	Pin           string
}

// WebhookEvent is the subset of a gateway webhook payload the feature layer
// acts on. The transport adapter has already verified the signature.
type WebhookEvent struct {
	Event     string
	Reference string
	Status    string
	Amount    decimal.Decimal
	Currency  string
	Metadata  map[string]string
}

// TopUpSvcFacade is the feature layer bridging the payment gateway and the
// wallet ledger.
type TopUpSvcFacade interface {
	// InitiateTopUp creates a pending top-up transaction and a hosted-checkout
	// session. No balance changes until CompleteTopUp verifies the payment.
	InitiateTopUp(ctx context.Context, userID string, amount decimal.Decimal, email string) (*PaymentAuthorization, error)

	// CompleteTopUp verifies the payment server-side and credits the wallet.
	// Idempotent on reference: a reference already completed returns the
	// existing transaction without a second credit.
	CompleteTopUp(ctx context.Context, userID, reference string) (*domain.Transaction, error)

	// Withdraw runs the PIN-authorized debit and initiates the bank payout.
	Withdraw(ctx context.Context, params WithdrawParams) (*domain.Transaction, error)

	ListBanks(ctx context.Context) ([]Bank, error)
	ResolveBankAccount(ctx context.Context, accountNumber, bankCode string) (*ResolvedAccount, error)

	// HandleWebhookEvent applies asynchronous gateway outcomes: charge.success
	// completes a pending top-up, transfer.failed / transfer.reversed refunds
	// a withdrawal. Unknown events are ignored.
	HandleWebhookEvent(ctx context.Context, event WebhookEvent) error
}
