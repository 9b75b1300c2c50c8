package utils

import (
	"fmt"
	"strings"
	"time"
)

// Reference prefixes distinguish how a transaction entered the ledger.
const (
	TransferReferencePrefix   = "VS_TRF"
	TopUpReferencePrefix      = "VS_TOP"
	WithdrawalReferencePrefix = "VS_WDL"
	ReceiptNumberPrefix       = "VSE"
)

// GenerateReference builds a unique transaction reference of the form
// PREFIX_YYYYMMDDHHMMSS_xxxxxxxx. The random suffix keeps references unique
// within the same second.
func GenerateReference(prefix string) (string, error) {
	suffix, err := RandomHex(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference suffix: %w", err)
	}
	return fmt.Sprintf("%s_%s_%s", prefix, time.Now().UTC().Format("20060102150405"), suffix), nil
}

// GenerateReceiptNumber builds a receipt number of the form VSE-YYYYMMDD-XXXXXX.
func GenerateReceiptNumber() (string, error) {
	suffix, err := RandomHex(3)
	if err != nil {
		return "", fmt.Errorf("failed to generate receipt number suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", ReceiptNumberPrefix, time.Now().UTC().Format("20060102"), strings.ToUpper(suffix)), nil
}

// GenerateAccountNumber builds a 10-digit wallet account number.
func GenerateAccountNumber() (string, error) {
	raw, err := RandomHex(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}
	var b strings.Builder
	for _, c := range raw {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		} else {
			// hex letters a-f map onto digits so the result stays numeric
			b.WriteRune(rune('0' + (int(c)-'a')%10))
		}
		if b.Len() == 10 {
			break
		}
	}
	return b.String(), nil
}
