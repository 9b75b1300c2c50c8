package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of a wallet account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountClosed    AccountStatus = "closed"
)

// Account is a user's wallet account. One account per owner; created with a
// zero balance at onboarding and never hard-deleted (closure is a status
// transition). Balance stays non-negative: every debit is checked against the
// locked balance before it applies.
type Account struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`    // FK -> users.user_id, unique
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"` // Fixed for the account's lifetime
	Status        AccountStatus   `json:"status"`
	DailyLimit    decimal.Decimal `json:"dailyLimit"`   // Ceiling on cumulative debits per calendar day
	MonthlyLimit  decimal.Decimal `json:"monthlyLimit"` // Ceiling on cumulative debits per calendar month
	AuditFields
}

// IsActive reports whether the account may take part in money movement.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}

// StartOfDay returns the UTC start of the calendar day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the UTC start of the calendar month containing t.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
