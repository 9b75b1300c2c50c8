package domain

import "time"

// PinCredential is a user's salted PIN hash. One active credential per user;
// rotation deactivates the old credential and inserts a new one rather than
// swapping the hash in place.
type PinCredential struct {
	CredentialID string     `json:"credentialID"` // Primary Key (UUID)
	UserID       string     `json:"userID"`
	HashedPin    string     `json:"-"` // Hex-encoded PBKDF2-SHA256 digest
	Salt         string     `json:"-"` // Hex-encoded random salt
	IsActive     bool       `json:"isActive"`
	LastUsedAt   *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
