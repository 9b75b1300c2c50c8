package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt mirrors the receipts table.
type Receipt struct {
	ReceiptID        string          `db:"receipt_id"`
	TransactionID    string          `db:"transaction_id"`
	ReceiptNumber    string          `db:"receipt_number"`
	Type             string          `db:"type"`
	Amount           decimal.Decimal `db:"amount"`
	CurrencyCode     string          `db:"currency_code"`
	SenderName       string          `db:"sender_name"`
	SenderPhone      string          `db:"sender_phone"`
	RecipientName    string          `db:"recipient_name"`
	RecipientPhone   string          `db:"recipient_phone"`
	Description      string          `db:"description"`
	Status           string          `db:"status"`
	PaymentReference string          `db:"payment_reference"`
	Fee              decimal.Decimal `db:"fee"`
	BalanceAfter     decimal.Decimal `db:"balance_after"`
	CreatedAt        time.Time       `db:"created_at"`
}
