package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// LedgerRepository owns every balance mutation. Each move method runs in a
// single database transaction that locks the affected account row(s) with
// SELECT ... FOR UPDATE, re-checks status and sufficiency on the locked
// balance, inserts the transaction row(s) and applies the balance update(s).
// Concurrent moves on one account therefore serialize at the store: two
// overlapping debits can never both draw from the same starting balance.
type LedgerRepository interface {
	// CreditAccount applies txn (a credit-like type) and returns the persisted
	// transaction together with the balance after the move.
	CreditAccount(ctx context.Context, txn domain.Transaction) (*domain.Transaction, decimal.Decimal, error)

	// DebitAccount applies txn (a debit-like type). Returns
	// apperrors.ErrInsufficientFunds when the locked balance is short, and
	// apperrors.ErrAccountNotActive when the locked row is not active.
	DebitAccount(ctx context.Context, txn domain.Transaction) (*domain.Transaction, decimal.Decimal, error)

	// TransferFunds applies the out and in legs atomically: both transaction
	// rows and both balance updates commit together or not at all. The two
	// legs must share a Reference. Returns the sender-side transaction and the
	// sender's balance after the move.
	TransferFunds(ctx context.Context, outTxn, inTxn domain.Transaction) (*domain.Transaction, decimal.Decimal, error)

	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	ListTransactionsByAccountID(ctx context.Context, accountID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SumDebitsSince totals debit-like pending and completed transaction
	// amounts for the account with created_at >= since. Used by the limit policy.
	SumDebitsSince(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error)

	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, completedAt *time.Time) error
}
