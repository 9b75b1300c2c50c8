package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portsrepo "github.com/vsend/vsend_wallet_backend/internal/core/ports/repositories"
	"github.com/vsend/vsend_wallet_backend/internal/models"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, account_number, balance, currency_code, status, daily_limit, monthly_limit, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.UserID,
		account.AccountNumber,
		account.Balance,
		account.CurrencyCode,
		string(account.Status),
		account.DailyLimit,
		account.MonthlyLimit,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("account already exists for user %s: %w", account.UserID, apperrors.ErrDuplicate)
		}
		return storeErr(err, "failed to save account %s", account.AccountID)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.findOne(ctx, query, accountID)
}

func (r *PgxAccountRepository) FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1;`
	return r.findOne(ctx, query, userID)
}

// FindAccountByPhone resolves the wallet account behind a phone number.
func (r *PgxAccountRepository) FindAccountByPhone(ctx context.Context, phoneNumber string) (*domain.Account, error) {
	query := `
		SELECT a.account_id, a.user_id, a.account_number, a.balance, a.currency_code, a.status, a.daily_limit, a.monthly_limit, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM accounts a
		JOIN users u ON u.user_id = a.user_id
		WHERE u.phone_number = $1;
	`
	return r.findOne(ctx, query, phoneNumber)
}

func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, string(status), now, userID)
	if err != nil {
		return storeErr(err, "failed to update account status %s", accountID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccountLimits(ctx context.Context, accountID string, dailyLimit, monthlyLimit decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET daily_limit = $2, monthly_limit = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, dailyLimit, monthlyLimit, now, userID)
	if err != nil {
		return storeErr(err, "failed to update account limits %s", accountID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var m models.Account
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&m.AccountID,
		&m.UserID,
		&m.AccountNumber,
		&m.Balance,
		&m.CurrencyCode,
		&m.Status,
		&m.DailyLimit,
		&m.MonthlyLimit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr(err, "failed to find account")
	}
	account := toDomainAccount(m)
	return &account, nil
}
