package models

// User mirrors the users table.
type User struct {
	UserID      string `db:"user_id"`
	PhoneNumber string `db:"phone_number"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	IsVerified  bool   `db:"is_verified"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
