package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
)

// ReceiptResponse defines the data returned for a receipt.
type ReceiptResponse struct {
	ReceiptID        string          `json:"receiptID"`
	TransactionID    string          `json:"transactionID"`
	ReceiptNumber    string          `json:"receiptNumber"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currencyCode"`
	SenderName       string          `json:"senderName"`
	SenderPhone      string          `json:"senderPhone"`
	RecipientName    string          `json:"recipientName,omitempty"`
	RecipientPhone   string          `json:"recipientPhone,omitempty"`
	Description      string          `json:"description"`
	Status           string          `json:"status"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	Fee              decimal.Decimal `json:"fee"`
	BalanceAfter     decimal.Decimal `json:"balanceAfter"`
	CreatedAt        time.Time       `json:"createdAt"`
	Summary          string          `json:"summary"`
}

// ListReceiptsRequest defines the receipt listing query parameters.
type ListReceiptsRequest struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListReceiptsResponse is a page of receipts.
type ListReceiptsResponse struct {
	Receipts  []ReceiptResponse `json:"receipts"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToReceiptResponse converts a domain.Receipt to ReceiptResponse DTO
func ToReceiptResponse(receipt *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:        receipt.ReceiptID,
		TransactionID:    receipt.TransactionID,
		ReceiptNumber:    receipt.ReceiptNumber,
		Type:             string(receipt.Type),
		Amount:           receipt.Amount,
		CurrencyCode:     receipt.CurrencyCode,
		SenderName:       receipt.SenderName,
		SenderPhone:      receipt.SenderPhone,
		RecipientName:    receipt.RecipientName,
		RecipientPhone:   receipt.RecipientPhone,
		Description:      receipt.Description,
		Status:           string(receipt.Status),
		PaymentReference: receipt.PaymentReference,
		Fee:              receipt.Fee,
		BalanceAfter:     receipt.BalanceAfter,
		CreatedAt:        receipt.CreatedAt,
		Summary:          receipt.Summary(),
	}
}

// ToListReceiptsResponse converts a page of receipts to its DTO
func ToListReceiptsResponse(receipts []domain.Receipt, nextToken *string) ListReceiptsResponse {
	items := make([]ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		items = append(items, ToReceiptResponse(&receipts[i]))
	}
	return ListReceiptsResponse{Receipts: items, NextToken: nextToken}
}
