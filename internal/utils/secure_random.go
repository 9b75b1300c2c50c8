package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomHex draws nBytes from crypto/rand and hex encodes them, yielding a
// 2*nBytes character string. PIN salts and transaction reference suffixes
// are built from this.
func RandomHex(nBytes int) (string, error) {
	if nBytes <= 0 {
		return "", fmt.Errorf("nBytes must be positive")
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
