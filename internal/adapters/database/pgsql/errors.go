package pgsql

import (
	"fmt"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
)

// storeErr marks an unexpected database failure as a store fault so callers
// can match it with errors.Is while the pgx cause stays in the chain. Row
// outcomes with a meaning of their own (no rows, unique violations) are
// mapped to their domain errors before reaching here.
func storeErr(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %w", fmt.Sprintf(format, args...), apperrors.ErrStoreUnavailable, err)
}
