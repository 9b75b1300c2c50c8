package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portsrepo "github.com/vsend/vsend_wallet_backend/internal/core/ports/repositories"
	"github.com/vsend/vsend_wallet_backend/internal/models"
	"github.com/vsend/vsend_wallet_backend/internal/utils/pagination"
)

// PgxLedgerRepository owns every balance mutation. Each move runs in one
// database transaction that locks the affected account row(s) with
// SELECT ... FOR UPDATE before re-checking status and sufficiency, so
// concurrent moves on the same account serialize at the store.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new repository for ledger data.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const txnColumns = `transaction_id, account_id, type, amount, currency_code, description, reference, status, counterparty_phone, created_at, completed_at`

const insertTxnQuery = `
	INSERT INTO transactions (` + txnColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

const updateBalanceQuery = `
	UPDATE accounts SET balance = $2, last_updated_at = $3, last_updated_by = $4
	WHERE account_id = $1;
`

func (r *PgxLedgerRepository) CreditAccount(ctx context.Context, txn domain.Transaction) (*domain.Transaction, decimal.Decimal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, storeErr(err, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	balance, status, err := lockAccountRow(ctx, tx, txn.AccountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if status != string(domain.AccountActive) {
		return nil, decimal.Zero, apperrors.ErrAccountNotActive
	}

	newBalance := balance.Add(txn.Amount)
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, decimal.Zero, err
	}
	if _, err := tx.Exec(ctx, updateBalanceQuery, txn.AccountID, newBalance, time.Now().UTC(), txn.AccountID); err != nil {
		return nil, decimal.Zero, storeErr(err, "failed to update balance for account %s", txn.AccountID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, decimal.Zero, storeErr(err, "failed to commit credit %s", txn.TransactionID)
	}
	return &txn, newBalance, nil
}

func (r *PgxLedgerRepository) DebitAccount(ctx context.Context, txn domain.Transaction) (*domain.Transaction, decimal.Decimal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, storeErr(err, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	balance, status, err := lockAccountRow(ctx, tx, txn.AccountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if status != string(domain.AccountActive) {
		return nil, decimal.Zero, apperrors.ErrAccountNotActive
	}
	// Sufficiency is decided on the locked balance, not whatever the caller read
	if balance.LessThan(txn.Amount) {
		return nil, decimal.Zero, apperrors.ErrInsufficientFunds
	}

	newBalance := balance.Sub(txn.Amount)
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, decimal.Zero, err
	}
	if _, err := tx.Exec(ctx, updateBalanceQuery, txn.AccountID, newBalance, time.Now().UTC(), txn.AccountID); err != nil {
		return nil, decimal.Zero, storeErr(err, "failed to update balance for account %s", txn.AccountID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, decimal.Zero, storeErr(err, "failed to commit debit %s", txn.TransactionID)
	}
	return &txn, newBalance, nil
}

// TransferFunds applies both legs atomically. Rows are locked in ascending
// account ID order so two opposing transfers cannot deadlock.
func (r *PgxLedgerRepository) TransferFunds(ctx context.Context, outTxn, inTxn domain.Transaction) (*domain.Transaction, decimal.Decimal, error) {
	if outTxn.Reference != inTxn.Reference {
		return nil, decimal.Zero, fmt.Errorf("%w: transfer legs must share a reference", apperrors.ErrValidation)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, storeErr(err, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	lockOrder := []string{outTxn.AccountID, inTxn.AccountID}
	if lockOrder[1] < lockOrder[0] {
		lockOrder[0], lockOrder[1] = lockOrder[1], lockOrder[0]
	}

	balances := make(map[string]decimal.Decimal, 2)
	for _, accountID := range lockOrder {
		balance, status, err := lockAccountRow(ctx, tx, accountID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if status != string(domain.AccountActive) {
			return nil, decimal.Zero, apperrors.ErrAccountNotActive
		}
		balances[accountID] = balance
	}

	senderBalance := balances[outTxn.AccountID]
	if senderBalance.LessThan(outTxn.Amount) {
		return nil, decimal.Zero, apperrors.ErrInsufficientFunds
	}

	newSenderBalance := senderBalance.Sub(outTxn.Amount)
	newRecipientBalance := balances[inTxn.AccountID].Add(inTxn.Amount)
	now := time.Now().UTC()

	batch := &pgx.Batch{}
	for _, txn := range []domain.Transaction{outTxn, inTxn} {
		batch.Queue(insertTxnQuery,
			txn.TransactionID,
			txn.AccountID,
			string(txn.Type),
			txn.Amount,
			txn.CurrencyCode,
			txn.Description,
			txn.Reference,
			string(txn.Status),
			txn.CounterpartyPhone,
			txn.CreatedAt,
			txn.CompletedAt,
		)
	}
	batch.Queue(updateBalanceQuery, outTxn.AccountID, newSenderBalance, now, outTxn.AccountID)
	batch.Queue(updateBalanceQuery, inTxn.AccountID, newRecipientBalance, now, outTxn.AccountID)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, decimal.Zero, storeErr(err, "failed to execute transfer batch %s", outTxn.Reference)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, decimal.Zero, storeErr(err, "failed to commit transfer %s", outTxn.Reference)
	}
	return &outTxn, newSenderBalance, nil
}

func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE transaction_id = $1;`
	return r.findOne(ctx, query, transactionID)
}

func (r *PgxLedgerRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	// A transfer produces two rows per reference; the earliest row is the
	// canonical one for idempotency checks
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE reference = $1 ORDER BY created_at ASC, transaction_id ASC LIMIT 1;`
	return r.findOne(ctx, query, reference)
}

func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + txnColumns + ` FROM transactions WHERE account_id = $1`)
	args := []any{accountID}

	appendArg := func(clause string, arg any) {
		args = append(args, arg)
		sb.WriteString(fmt.Sprintf(clause, len(args)))
	}

	if filter.Type != nil {
		appendArg(" AND type = $%d", string(*filter.Type))
	}
	if filter.Status != nil {
		appendArg(" AND status = $%d", string(*filter.Status))
	}
	if filter.StartDate != nil {
		appendArg(" AND created_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		appendArg(" AND created_at <= $%d", *filter.EndDate)
	}

	if nextToken != nil && *nextToken != "" {
		tokenTime, tokenID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, tokenTime, tokenID)
		sb.WriteString(fmt.Sprintf(" AND (created_at, transaction_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	args = append(args, limit+1)
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, transaction_id DESC LIMIT $%d;", len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, storeErr(err, "failed to query transactions for account %s", accountID)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, storeErr(err, "failed to scan transaction row for account %s", accountID)
		}
		transactions = append(transactions, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, storeErr(err, "error iterating transaction rows for account %s", accountID)
	}

	var next *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		next = &token
	}
	return transactions, next, nil
}

// SumDebitsSince totals pending and completed debit-like amounts from since
// onward. In-flight debits count so a burst of withdrawals cannot slip past
// the limit before any of them settle.
func (r *PgxLedgerRepository) SumDebitsSince(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = $1
		  AND created_at >= $2
		  AND type IN ('debit', 'transfer_out', 'withdrawal')
		  AND status IN ('pending', 'completed');
	`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, accountID, since).Scan(&total); err != nil {
		return decimal.Zero, storeErr(err, "failed to sum debits for account %s", accountID)
	}
	return total, nil
}

func (r *PgxLedgerRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, completedAt *time.Time) error {
	query := `UPDATE transactions SET status = $2, completed_at = $3 WHERE transaction_id = $1;`
	tag, err := r.pool.Exec(ctx, query, transactionID, string(status), completedAt)
	if err != nil {
		return storeErr(err, "failed to update transaction status %s", transactionID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) findOne(ctx context.Context, query string, arg any) (*domain.Transaction, error) {
	m, err := scanTransaction(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr(err, "failed to find transaction")
	}
	txn := toDomainTransaction(m)
	return &txn, nil
}

// lockAccountRow takes the row lock every balance decision is made under.
func lockAccountRow(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, string, error) {
	var balance decimal.Decimal
	var status string
	err := tx.QueryRow(ctx, `SELECT balance, status FROM accounts WHERE account_id = $1 FOR UPDATE;`, accountID).Scan(&balance, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, "", apperrors.ErrNotFound
		}
		return decimal.Zero, "", storeErr(err, "failed to lock account %s", accountID)
	}
	return balance, status, nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	_, err := tx.Exec(ctx, insertTxnQuery,
		txn.TransactionID,
		txn.AccountID,
		string(txn.Type),
		txn.Amount,
		txn.CurrencyCode,
		txn.Description,
		txn.Reference,
		string(txn.Status),
		txn.CounterpartyPhone,
		txn.CreatedAt,
		txn.CompletedAt,
	)
	if err != nil {
		return storeErr(err, "failed to insert transaction %s", txn.TransactionID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Type,
		&m.Amount,
		&m.CurrencyCode,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.CounterpartyPhone,
		&m.CreatedAt,
		&m.CompletedAt,
	)
	return m, err
}
