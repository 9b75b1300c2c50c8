package domain

// User represents a wallet owner, onboarded by phone number.
type User struct {
	UserID      string `json:"userID"`      // Primary Key (UUID)
	PhoneNumber string `json:"phoneNumber"` // Unique, normalized (e.g. 0551234567)
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	IsVerified  bool   `json:"isVerified"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// DisplayName returns the user's full name, falling back to the phone number.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.PhoneNumber
	}
}
