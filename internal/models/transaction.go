package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	AccountID         string          `db:"account_id"`
	Type              string          `db:"type"`
	Amount            decimal.Decimal `db:"amount"`
	CurrencyCode      string          `db:"currency_code"`
	Description       string          `db:"description"`
	Reference         string          `db:"reference"`
	Status            string          `db:"status"`
	CounterpartyPhone string          `db:"counterparty_phone"`
	CreatedAt         time.Time       `db:"created_at"`
	CompletedAt       *time.Time      `db:"completed_at"`
}
