package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus is the display status of a receipt.
type ReceiptStatus string

const (
	ReceiptSuccess ReceiptStatus = "success"
	ReceiptFailed  ReceiptStatus = "failed"
	ReceiptPending ReceiptStatus = "pending"
)

// Receipt is a denormalized, write-once summary of a completed transaction,
// kept for user-facing display. The Transaction row remains the source of
// truth; the only mutation ever applied here is a terminal status correction
// when the payment gateway reports failure asynchronously.
type Receipt struct {
	ReceiptID        string          `json:"receiptID"` // Primary Key (UUID)
	TransactionID    string          `json:"transactionID"`
	ReceiptNumber    string          `json:"receiptNumber"` // Human-readable, VSE-prefixed
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currencyCode"`
	SenderName       string          `json:"senderName"`
	SenderPhone      string          `json:"senderPhone"`
	RecipientName    string          `json:"recipientName,omitempty"`
	RecipientPhone   string          `json:"recipientPhone,omitempty"`
	Description      string          `json:"description"`
	Status           ReceiptStatus   `json:"status"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	Fee              decimal.Decimal `json:"fee"`
	BalanceAfter     decimal.Decimal `json:"balanceAfter"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Summary returns the plain-text share form of the receipt, the string mobile
// clients put behind their share button.
func (r Receipt) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "V-Send Receipt %s\n", r.ReceiptNumber)
	fmt.Fprintf(&b, "%s: %s %s\n", typeLabel(r.Type), r.CurrencyCode, r.Amount.StringFixed(2))
	if r.SenderName != "" {
		fmt.Fprintf(&b, "From: %s\n", r.SenderName)
	}
	if r.RecipientName != "" {
		fmt.Fprintf(&b, "To: %s\n", r.RecipientName)
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "Note: %s\n", r.Description)
	}
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	fmt.Fprintf(&b, "Date: %s", r.CreatedAt.UTC().Format("2 Jan 2006 15:04"))
	return b.String()
}

func typeLabel(t TransactionType) string {
	switch t {
	case TransferOut:
		return "Money sent"
	case TransferIn:
		return "Money received"
	case TopUp:
		return "Wallet top up"
	case Withdrawal:
		return "Withdrawal"
	default:
		return "Transaction"
	}
}

// Counterparty carries the denormalized names and phones recorded on a receipt.
type Counterparty struct {
	SenderName     string
	SenderPhone    string
	RecipientName  string
	RecipientPhone string
}
