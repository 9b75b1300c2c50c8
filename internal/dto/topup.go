package dto

import (
	"github.com/shopspring/decimal"

	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
)

// TopUpRequest starts a hosted-checkout top-up.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Email  string          `json:"email" binding:"omitempty,email"`
}

// TopUpResponse carries the checkout handle the client redirects to.
type TopUpResponse struct {
	AuthorizationURL string `json:"authorizationURL"`
	AccessCode       string `json:"accessCode"`
	Reference        string `json:"reference"`
}

// CompleteTopUpRequest confirms a payment after checkout.
type CompleteTopUpRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// WithdrawRequest sends wallet funds to a bank account.
type WithdrawRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	BankCode      string          `json:"bankCode" binding:"required"`
	AccountNumber string          `json:"accountNumber" binding:"required"`
	AccountName   string          `json:"accountName"`
	Description   string          `json:"description"`
	Pin           string          `json:"pin" binding:"required"`
}

// BankResponse is a bank selectable for withdrawals.
type BankResponse struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ResolveAccountRequest verifies a bank account before a withdrawal.
type ResolveAccountRequest struct {
	AccountNumber string `form:"accountNumber" binding:"required"`
	BankCode      string `form:"bankCode" binding:"required"`
}

// ResolveAccountResponse is the verified owner of a bank account.
type ResolveAccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// ToTopUpResponse converts a payment authorization to TopUpResponse DTO
func ToTopUpResponse(auth *portssvc.PaymentAuthorization) TopUpResponse {
	return TopUpResponse{
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
		Reference:        auth.Reference,
	}
}

// ToBankResponses converts gateway banks to BankResponse DTOs
func ToBankResponses(banks []portssvc.Bank) []BankResponse {
	items := make([]BankResponse, 0, len(banks))
	for _, b := range banks {
		items = append(items, BankResponse{Name: b.Name, Code: b.Code})
	}
	return items
}

// ToResolveAccountResponse converts a resolved account to its DTO
func ToResolveAccountResponse(resolved *portssvc.ResolvedAccount) ResolveAccountResponse {
	return ResolveAccountResponse{
		AccountNumber: resolved.AccountNumber,
		AccountName:   resolved.AccountName,
	}
}
