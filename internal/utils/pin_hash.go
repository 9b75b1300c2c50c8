package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pinSaltBytes     = 16
	pinHashIterCount = 210000
	pinHashKeyLen    = 32
)

// ValidatePinFormat checks that the PIN is 4 to 6 ASCII digits.
func ValidatePinFormat(pin string) error {
	if len(pin) < 4 || len(pin) > 6 {
		return fmt.Errorf("pin must be 4 to 6 digits")
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return fmt.Errorf("pin must contain only digits")
		}
	}
	return nil
}

// HashPin derives a PBKDF2-SHA256 hash of the PIN with a fresh random salt.
// Both return values are hex encoded.
func HashPin(pin string) (hashedPin string, salt string, err error) {
	salt, err = RandomHex(pinSaltBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate pin salt: %w", err)
	}
	return hashPinWithSalt(pin, salt), salt, nil
}

// CheckPinHash reports whether the PIN matches the stored hash. The comparison
// is constant time.
func CheckPinHash(pin, salt, hashedPin string) bool {
	expected, err := hex.DecodeString(hashedPin)
	if err != nil {
		return false
	}
	actual, err := hex.DecodeString(hashPinWithSalt(pin, salt))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(expected, actual) == 1
}

func hashPinWithSalt(pin, salt string) string {
	key := pbkdf2.Key([]byte(pin), []byte(salt), pinHashIterCount, pinHashKeyLen, sha256.New)
	return hex.EncodeToString(key)
}
