package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but not allowed.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the current resource state.
var ErrConflict = errors.New("conflict with current state")

// ErrStoreUnavailable indicates the backing store could not be reached or errored.
// Callers must not assume the operation did or did not apply; re-query to find out.
var ErrStoreUnavailable = errors.New("store unavailable")

// Business-rule violations surfaced by wallet operations. These are caller
// errors: surfaced verbatim, never retried, never logged as system faults.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrAccountNotActive     = errors.New("account is not active")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrSelfTransfer         = errors.New("cannot transfer to your own wallet")
	ErrCurrencyMismatch     = errors.New("account currencies do not match")
	ErrDailyLimitExceeded   = errors.New("daily transaction limit exceeded")
	ErrMonthlyLimitExceeded = errors.New("monthly transaction limit exceeded")
	ErrInvalidPin           = errors.New("invalid PIN")
	ErrPinNotSetup          = errors.New("PIN not set up")
)
