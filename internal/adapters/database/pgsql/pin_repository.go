package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portsrepo "github.com/vsend/vsend_wallet_backend/internal/core/ports/repositories"
	"github.com/vsend/vsend_wallet_backend/internal/models"
)

type PgxPinRepository struct {
	pool *pgxpool.Pool
}

// NewPinRepository creates a new repository for PIN credential data.
func NewPinRepository(pool *pgxpool.Pool) portsrepo.PinRepository {
	return &PgxPinRepository{pool: pool}
}

var _ portsrepo.PinRepository = (*PgxPinRepository)(nil)

const pinColumns = `credential_id, user_id, hashed_pin, salt, is_active, last_used_at, created_at`

func (r *PgxPinRepository) FindActiveCredentialByUserID(ctx context.Context, userID string) (*domain.PinCredential, error) {
	query := `SELECT ` + pinColumns + ` FROM pin_credentials WHERE user_id = $1 AND is_active = TRUE;`
	var m models.PinCredential
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&m.CredentialID,
		&m.UserID,
		&m.HashedPin,
		&m.Salt,
		&m.IsActive,
		&m.LastUsedAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr(err, "failed to find pin credential for user %s", userID)
	}
	cred := toDomainPinCredential(m)
	return &cred, nil
}

// SaveCredential deactivates any prior active credential and inserts the new
// one in the same database transaction, keeping the one-active-per-user
// invariant even under concurrent rotations.
func (r *PgxPinRepository) SaveCredential(ctx context.Context, cred domain.PinCredential) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr(err, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	deactivate := `UPDATE pin_credentials SET is_active = FALSE WHERE user_id = $1 AND is_active = TRUE;`
	if _, err := tx.Exec(ctx, deactivate, cred.UserID); err != nil {
		return storeErr(err, "failed to deactivate prior credential for user %s", cred.UserID)
	}

	insert := `
		INSERT INTO pin_credentials (` + pinColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insert,
		cred.CredentialID,
		cred.UserID,
		cred.HashedPin,
		cred.Salt,
		cred.IsActive,
		cred.LastUsedAt,
		cred.CreatedAt,
	)
	if err != nil {
		return storeErr(err, "failed to insert pin credential %s", cred.CredentialID)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr(err, "failed to commit pin credential %s", cred.CredentialID)
	}
	return nil
}

func (r *PgxPinRepository) TouchLastUsed(ctx context.Context, credentialID string, at time.Time) error {
	query := `UPDATE pin_credentials SET last_used_at = $2 WHERE credential_id = $1;`
	tag, err := r.pool.Exec(ctx, query, credentialID, at)
	if err != nil {
		return storeErr(err, "failed to touch pin credential %s", credentialID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
