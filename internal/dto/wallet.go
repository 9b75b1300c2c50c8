package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// TransferRequest defines a PIN-authorized wallet-to-wallet transfer.
type TransferRequest struct {
	RecipientPhone string          `json:"recipientPhone" binding:"required,phone"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Description    string          `json:"description"`
	Pin            string          `json:"pin" binding:"required"`
}

// AccountResponse defines the data returned for a wallet account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
	Status        string          `json:"status"`
	DailyLimit    decimal.Decimal `json:"dailyLimit"`
	MonthlyLimit  decimal.Decimal `json:"monthlyLimit"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BalanceResponse is the lightweight balance view polled by clients.
type BalanceResponse struct {
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string          `json:"transactionID"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	SignedAmount      decimal.Decimal `json:"signedAmount"`
	CurrencyCode      string          `json:"currencyCode"`
	Description       string          `json:"description"`
	Reference         string          `json:"reference"`
	Status            string          `json:"status"`
	CounterpartyPhone string          `json:"counterpartyPhone,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	CompletedAt       *time.Time      `json:"completedAt,omitempty"`
}

// TransferResponse returns the sender-side result of a transfer.
type TransferResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
}

// ListTransactionsRequest defines the history query parameters.
type ListTransactionsRequest struct {
	Type      *string    `form:"type" binding:"omitempty,oneof=credit debit transfer_out transfer_in topup withdrawal"`
	Status    *string    `form:"status" binding:"omitempty,oneof=pending completed failed cancelled"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
}

// ListTransactionsResponse is a page of transaction history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		Type:              string(txn.Type),
		Amount:            txn.Amount,
		SignedAmount:      txn.SignedAmount(),
		CurrencyCode:      txn.CurrencyCode,
		Description:       txn.Description,
		Reference:         txn.Reference,
		Status:            string(txn.Status),
		CounterpartyPhone: txn.CounterpartyPhone,
		CreatedAt:         txn.CreatedAt,
		CompletedAt:       txn.CompletedAt,
	}
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		Balance:       acc.Balance,
		CurrencyCode:  acc.CurrencyCode,
		Status:        string(acc.Status),
		DailyLimit:    acc.DailyLimit,
		MonthlyLimit:  acc.MonthlyLimit,
		CreatedAt:     acc.CreatedAt,
	}
}

// ToListTransactionsResponse converts a page of transactions to its DTO
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	items := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, ToTransactionResponse(&txns[i]))
	}
	return ListTransactionsResponse{Transactions: items, NextToken: nextToken}
}

// ToTransactionFilter converts the request's filter fields to the domain filter.
func (r ListTransactionsRequest) ToTransactionFilter() domain.TransactionFilter {
	filter := domain.TransactionFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
	if r.Type != nil {
		t := domain.TransactionType(*r.Type)
		filter.Type = &t
	}
	if r.Status != nil {
		s := domain.TransactionStatus(*r.Status)
		filter.Status = &s
	}
	return filter
}
