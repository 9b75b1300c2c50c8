package services

import "context"

// PinSvcFacade is the PIN vault plus the authorization gate. Every
// money-movement entry point must call Authorize before touching any account
// or transaction state; a failed authorization leaves the ledger untouched.
type PinSvcFacade interface {
	// SetupPin creates the user's credential. The PIN must be 4-6 ASCII digits
	// and match confirmPin; any prior active credential is deactivated.
	SetupPin(ctx context.Context, userID, pin, confirmPin string) error

	// VerifyPin reports whether pin matches the active credential. A mismatch
	// is (false, nil); a missing credential is apperrors.ErrPinNotSetup.
	// Success updates the credential's last-used timestamp.
	VerifyPin(ctx context.Context, userID, pin string) (bool, error)

	HasPin(ctx context.Context, userID string) (bool, error)

	// ChangePin rotates the credential after verifying the current PIN.
	ChangePin(ctx context.Context, userID, currentPin, newPin, confirmNewPin string) error

	// Authorize is VerifyPin as a precondition: mismatch becomes
	// apperrors.ErrInvalidPin instead of a boolean.
	Authorize(ctx context.Context, userID, pin string) error
}
