package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a wallet transaction. Amounts are always
// positive; the sign of the balance change is implied by the type.
type TransactionType string

const (
	Credit      TransactionType = "credit"
	Debit       TransactionType = "debit"
	TransferOut TransactionType = "transfer_out"
	TransferIn  TransactionType = "transfer_in"
	TopUp       TransactionType = "topup"
	Withdrawal  TransactionType = "withdrawal"
)

// TransactionStatus is the state of a transaction record.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
	TxnCancelled TransactionStatus = "cancelled"
)

// Transaction records a single balance movement on one account. A transfer
// produces two rows (transfer_out on the sender, transfer_in on the
// recipient) sharing one Reference; both commit together or not at all.
type Transaction struct {
	TransactionID     string            `json:"transactionID"` // Primary Key (UUID)
	AccountID         string            `json:"accountID"`     // FK -> accounts.account_id
	Type              TransactionType   `json:"type"`
	Amount            decimal.Decimal   `json:"amount"` // Positive, at most 2 fractional digits
	CurrencyCode      string            `json:"currencyCode"`
	Description       string            `json:"description"`
	Reference         string            `json:"reference"` // Shared across a transfer pair; idempotency key for gateway flows
	Status            TransactionStatus `json:"status"`
	CounterpartyPhone string            `json:"counterpartyPhone,omitempty"` // Set for transfer and payment types
	CreatedAt         time.Time         `json:"createdAt"`
	CompletedAt       *time.Time        `json:"completedAt,omitempty"`
}

// IsDebitLike reports whether the type reduces the account balance. Debit-like
// movement is what the daily and monthly limits meter.
func (t TransactionType) IsDebitLike() bool {
	switch t {
	case Debit, TransferOut, Withdrawal:
		return true
	default:
		return false
	}
}

// SignedAmount returns the balance delta this transaction applies.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type.IsDebitLike() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionFilter narrows transaction history queries.
type TransactionFilter struct {
	Type      *TransactionType
	Status    *TransactionStatus
	StartDate *time.Time
	EndDate   *time.Time
}
