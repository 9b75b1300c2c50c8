package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// CreditParams moves money into a user's wallet. Credits carry no PIN: they
// are only reachable from flows that established trust elsewhere (a verified
// gateway payment, or the refund leg of a failed withdrawal).
type CreditParams struct {
	UserID      string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Description string
	Reference   string
}

// DebitParams moves money out of a user's wallet. Pin is verified before any
// account state is read or written.
type DebitParams struct {
	UserID      string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Description string
	Reference   string
	Pin         string
}

// TransferFundsParams is a PIN-authorized wallet-to-wallet transfer keyed by
// the recipient's phone number.
type TransferFundsParams struct {
	SenderUserID   string
	RecipientPhone string
	Amount         decimal.Decimal
	Description    string
	Pin            string
}

// WalletSvcFacade is the ledger surface. Every debit-like move runs the same
// pipeline: authorize PIN, validate amount, check spend limits, move funds
// under a row lock, record a receipt. Limit checks count pending and completed
// debits; a move that lands exactly on the limit is allowed.
type WalletSvcFacade interface {
	GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, string, error)

	Credit(ctx context.Context, params CreditParams) (*domain.Transaction, decimal.Decimal, error)
	Debit(ctx context.Context, params DebitParams) (*domain.Transaction, decimal.Decimal, error)

	// Transfer debits the sender and credits the recipient atomically. Fails
	// with apperrors.ErrSelfTransfer when both sides resolve to one account,
	// apperrors.ErrRecipientNotFound when the phone is unknown, and
	// apperrors.ErrCurrencyMismatch when the wallets disagree on currency.
	Transfer(ctx context.Context, params TransferFundsParams) (*domain.Transaction, decimal.Decimal, error)

	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}
