package models

import "time"

// PinCredential mirrors the pin_credentials table.
type PinCredential struct {
	CredentialID string     `db:"credential_id"`
	UserID       string     `db:"user_id"`
	HashedPin    string     `db:"hashed_pin"`
	Salt         string     `db:"salt"`
	IsActive     bool       `db:"is_active"`
	LastUsedAt   *time.Time `db:"last_used_at"`
	CreatedAt    time.Time  `db:"created_at"`
}
