package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InitializePaymentParams starts a hosted-checkout payment for a top-up.
type InitializePaymentParams struct {
	Email     string
	Amount    decimal.Decimal // Major units; the adapter converts to the gateway's subunit
	Currency  string
	Reference string
	Metadata  map[string]string
}

// PaymentAuthorization is the gateway's handle for a started payment.
type PaymentAuthorization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// PaymentVerification is the gateway's server-side view of a payment.
type PaymentVerification struct {
	Reference string
	Status    string // "success", "failed", "abandoned"
	Amount    decimal.Decimal
	Currency  string
	Channel   string
	PaidAt    *time.Time
	Metadata  map[string]string
}

// Succeeded reports whether the gateway confirmed the payment.
func (v PaymentVerification) Succeeded() bool { return v.Status == "success" }

// Bank is a bank selectable for withdrawals.
type Bank struct {
	Name string
	Code string
}

// ResolvedAccount is the verified owner of a bank account number.
type ResolvedAccount struct {
	AccountNumber string
	AccountName   string
}

// TransferRecipientParams registers a withdrawal destination with the gateway.
type TransferRecipientParams struct {
	Type          string // "nuban" or "mobile_money"
	Name          string
	AccountNumber string
	BankCode      string
	Currency      string
}

// TransferParams initiates a payout to a previously created recipient.
type TransferParams struct {
	RecipientCode string
	Amount        decimal.Decimal
	Reason        string
	Reference     string
}

// TransferResult is the gateway's acknowledgement of an initiated payout.
type TransferResult struct {
	TransferCode string
	Status       string
	Reference    string
}

// PaymentGateway is the card-payment provider consumed by the top-up and
// withdrawal feature layer. Ledger operations never call it directly: credit
// and debit run only after this layer has established trust (a verified
// payment, or a PIN-authorized withdrawal).
type PaymentGateway interface {
	InitializePayment(ctx context.Context, params InitializePaymentParams) (*PaymentAuthorization, error)
	VerifyPayment(ctx context.Context, reference string) (*PaymentVerification, error)
	ListBanks(ctx context.Context) ([]Bank, error)
	ResolveAccountNumber(ctx context.Context, accountNumber, bankCode string) (*ResolvedAccount, error)
	CreateTransferRecipient(ctx context.Context, params TransferRecipientParams) (recipientCode string, err error)
	InitiateTransfer(ctx context.Context, params TransferParams) (*TransferResult, error)
}
