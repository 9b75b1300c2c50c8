package dto

// SetupPinRequest creates or replaces the caller's PIN credential.
type SetupPinRequest struct {
	Pin        string `json:"pin" binding:"required,numeric,min=4,max=6"`
	ConfirmPin string `json:"confirmPin" binding:"required,eqfield=Pin"`
}

// VerifyPinRequest checks a PIN without moving money.
type VerifyPinRequest struct {
	Pin string `json:"pin" binding:"required"`
}

// VerifyPinResponse reports the verification outcome.
type VerifyPinResponse struct {
	Valid bool `json:"valid"`
}

// HasPinResponse reports whether the caller has a PIN credential.
type HasPinResponse struct {
	HasPin bool `json:"hasPin"`
}

// ChangePinRequest rotates the caller's PIN credential.
type ChangePinRequest struct {
	CurrentPin    string `json:"currentPin" binding:"required"`
	NewPin        string `json:"newPin" binding:"required,numeric,min=4,max=6"`
	ConfirmNewPin string `json:"confirmNewPin" binding:"required,eqfield=NewPin"`
}
