package pgsql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
)

func TestStoreErrKeepsBothChains(t *testing.T) {
	cause := errors.New("connection refused")
	err := storeErr(cause, "failed to lock account %s", "abc")

	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to lock account abc")
}
