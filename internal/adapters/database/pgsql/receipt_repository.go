package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portsrepo "github.com/vsend/vsend_wallet_backend/internal/core/ports/repositories"
	"github.com/vsend/vsend_wallet_backend/internal/models"
	"github.com/vsend/vsend_wallet_backend/internal/utils/pagination"
)

type PgxReceiptRepository struct {
	pool *pgxpool.Pool
}

// NewReceiptRepository creates a new repository for receipt data.
func NewReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepository {
	return &PgxReceiptRepository{pool: pool}
}

var _ portsrepo.ReceiptRepository = (*PgxReceiptRepository)(nil)

const receiptColumns = `receipt_id, transaction_id, receipt_number, type, amount, currency_code, sender_name, sender_phone, recipient_name, recipient_phone, description, status, payment_reference, fee, balance_after, created_at`

func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		receipt.ReceiptID,
		receipt.TransactionID,
		receipt.ReceiptNumber,
		string(receipt.Type),
		receipt.Amount,
		receipt.CurrencyCode,
		receipt.SenderName,
		receipt.SenderPhone,
		receipt.RecipientName,
		receipt.RecipientPhone,
		receipt.Description,
		string(receipt.Status),
		receipt.PaymentReference,
		receipt.Fee,
		receipt.BalanceAfter,
		receipt.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("receipt already exists for transaction %s: %w", receipt.TransactionID, apperrors.ErrDuplicate)
		}
		return storeErr(err, "failed to save receipt %s", receipt.ReceiptID)
	}
	return nil
}

func (r *PgxReceiptRepository) FindReceiptByTransactionID(ctx context.Context, transactionID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE transaction_id = $1;`
	return r.findOne(ctx, query, transactionID)
}

func (r *PgxReceiptRepository) FindReceiptByNumber(ctx context.Context, receiptNumber string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_number = $1;`
	return r.findOne(ctx, query, receiptNumber)
}

func (r *PgxReceiptRepository) ListReceiptsByPhone(ctx context.Context, phoneNumber string, limit int, nextToken *string) ([]domain.Receipt, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE (sender_phone = $1 OR recipient_phone = $1)`
	args := []any{phoneNumber}

	if nextToken != nil && *nextToken != "" {
		tokenTime, tokenID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, tokenTime, tokenID)
		query += fmt.Sprintf(" AND (created_at, receipt_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, receipt_id DESC LIMIT $%d;", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, storeErr(err, "failed to query receipts for phone")
	}
	defer rows.Close()

	receipts := []domain.Receipt{}
	for rows.Next() {
		m, err := scanReceipt(rows)
		if err != nil {
			return nil, nil, storeErr(err, "failed to scan receipt row")
		}
		receipts = append(receipts, toDomainReceipt(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, storeErr(err, "error iterating receipt rows")
	}

	var next *string
	if len(receipts) > limit {
		receipts = receipts[:limit]
		last := receipts[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ReceiptID)
		next = &token
	}
	return receipts, next, nil
}

func (r *PgxReceiptRepository) UpdateReceiptStatus(ctx context.Context, receiptID string, status domain.ReceiptStatus, balanceAfter *decimal.Decimal) error {
	query := `
		UPDATE receipts
		SET status = $2, balance_after = COALESCE($3, balance_after)
		WHERE receipt_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, receiptID, string(status), balanceAfter)
	if err != nil {
		return storeErr(err, "failed to update receipt status %s", receiptID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReceiptRepository) findOne(ctx context.Context, query string, arg any) (*domain.Receipt, error) {
	m, err := scanReceipt(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr(err, "failed to find receipt")
	}
	receipt := toDomainReceipt(m)
	return &receipt, nil
}

func scanReceipt(row rowScanner) (models.Receipt, error) {
	var m models.Receipt
	err := row.Scan(
		&m.ReceiptID,
		&m.TransactionID,
		&m.ReceiptNumber,
		&m.Type,
		&m.Amount,
		&m.CurrencyCode,
		&m.SenderName,
		&m.SenderPhone,
		&m.RecipientName,
		&m.RecipientPhone,
		&m.Description,
		&m.Status,
		&m.PaymentReference,
		&m.Fee,
		&m.BalanceAfter,
		&m.CreatedAt,
	)
	return m, err
}
