package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// RecordReceiptParams captures a completed move for its receipt.
type RecordReceiptParams struct {
	Transaction      domain.Transaction
	Sender           domain.Counterparty
	Recipient        domain.Counterparty
	Fee              decimal.Decimal
	BalanceAfter     decimal.Decimal
	PaymentReference string
}

// ReceiptSvcFacade records and serves receipts. Recording is best-effort from
// the caller's point of view: the wallet service logs a Record failure and
// still returns the successful move.
type ReceiptSvcFacade interface {
	// Record writes a receipt with a freshly generated receipt number.
	Record(ctx context.Context, params RecordReceiptParams) (*domain.Receipt, error)

	// GetReceiptByTransactionID returns the receipt only if the phone on file
	// for userID appears on it as sender or recipient.
	GetReceiptByTransactionID(ctx context.Context, userID, transactionID string) (*domain.Receipt, error)
	GetReceiptByNumber(ctx context.Context, userID, receiptNumber string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Receipt, *string, error)

	// MarkStatus applies a terminal status correction after an asynchronous
	// gateway outcome.
	MarkStatus(ctx context.Context, transactionID string, status domain.ReceiptStatus, balanceAfter *decimal.Decimal) error
}
