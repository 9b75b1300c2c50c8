package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsend/vsend_wallet_backend/internal/utils"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normalized", "0551234567", "0551234567"},
		{"spaces stripped", "055 123 4567", "0551234567"},
		{"dashes stripped", "055-123-4567", "0551234567"},
		{"parentheses stripped", "(055) 123 4567", "0551234567"},
		{"plus prefix kept", "+233551234567", "+233551234567"},
		{"double zero becomes plus", "00233551234567", "+233551234567"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := utils.NormalizePhoneNumber(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizePhoneNumber_Invalid(t *testing.T) {
	for _, input := range []string{"", "12345", "1234567890123456", "055x1234567", "055+1234567"} {
		_, err := utils.NormalizePhoneNumber(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNormalizePhoneNumber_EquivalentFormsMatch(t *testing.T) {
	a, err := utils.NormalizePhoneNumber("024 123 4567")
	require.NoError(t, err)
	b, err := utils.NormalizePhoneNumber("0241234567")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
