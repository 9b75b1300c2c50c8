package utils

import (
	"fmt"
	"strings"
)

// NormalizePhoneNumber canonicalizes a phone number to E.164-ish form:
// spaces, dashes and parentheses are stripped, a leading "00" becomes "+".
// Numbers without a country prefix are kept as entered minus formatting, so
// "024 123 4567" and "0241234567" resolve to the same wallet.
func NormalizePhoneNumber(raw string) (string, error) {
	var b strings.Builder
	for i, c := range raw {
		switch {
		case c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '+' && i == 0:
			b.WriteRune(c)
		case c == ' ' || c == '-' || c == '(' || c == ')':
			// formatting only
		default:
			return "", fmt.Errorf("phone number contains invalid character %q", c)
		}
	}
	normalized := b.String()
	if strings.HasPrefix(normalized, "00") {
		normalized = "+" + normalized[2:]
	}
	digits := strings.TrimPrefix(normalized, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return "", fmt.Errorf("phone number must have 7 to 15 digits")
	}
	return normalized, nil
}
