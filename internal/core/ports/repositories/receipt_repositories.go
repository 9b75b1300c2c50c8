package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// ReceiptRepository stores denormalized transaction receipts.
type ReceiptRepository interface {
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error
	FindReceiptByTransactionID(ctx context.Context, transactionID string) (*domain.Receipt, error)
	FindReceiptByNumber(ctx context.Context, receiptNumber string) (*domain.Receipt, error)
	// ListReceiptsByPhone returns receipts where the phone appears as sender or
	// recipient, newest first, token-paginated.
	ListReceiptsByPhone(ctx context.Context, phoneNumber string, limit int, nextToken *string) ([]domain.Receipt, *string, error)
	// UpdateReceiptStatus applies the terminal status correction used when the
	// gateway reports an asynchronous outcome. balanceAfter is optional.
	UpdateReceiptStatus(ctx context.Context, receiptID string, status domain.ReceiptStatus, balanceAfter *decimal.Decimal) error
}
