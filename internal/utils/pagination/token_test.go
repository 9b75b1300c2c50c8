package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsend/vsend_wallet_backend/internal/utils/pagination"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2026, 8, 28, 10, 30, 0, 123456789, time.UTC)
	id := "3f1f8a1e-0000-4000-8000-000000000001"

	token := pagination.EncodeToken(createdAt, id)
	require.NotEmpty(t, token)

	gotTime, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	// Valid base64 but missing the separator
	_, _, err = pagination.DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}
