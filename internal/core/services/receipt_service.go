package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portsrepo "github.com/vsend/vsend_wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/utils"
)

type receiptService struct {
	BaseService
	receiptRepo portsrepo.ReceiptRepository
	userRepo    portsrepo.UserReader
}

// NewReceiptService creates the receipt service.
func NewReceiptService(receiptRepo portsrepo.ReceiptRepository, userRepo portsrepo.UserReader) portssvc.ReceiptSvcFacade {
	return &receiptService{receiptRepo: receiptRepo, userRepo: userRepo}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

func (s *receiptService) Record(ctx context.Context, params portssvc.RecordReceiptParams) (*domain.Receipt, error) {
	receiptNumber, err := utils.GenerateReceiptNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt number: %w", err)
	}

	txn := params.Transaction
	receipt := domain.Receipt{
		ReceiptID:        uuid.NewString(),
		TransactionID:    txn.TransactionID,
		ReceiptNumber:    receiptNumber,
		Type:             txn.Type,
		Amount:           txn.Amount,
		CurrencyCode:     txn.CurrencyCode,
		SenderName:       params.Sender.SenderName,
		SenderPhone:      params.Sender.SenderPhone,
		RecipientName:    params.Recipient.RecipientName,
		RecipientPhone:   params.Recipient.RecipientPhone,
		Description:      txn.Description,
		Status:           receiptStatusForTxn(txn.Status),
		PaymentReference: params.PaymentReference,
		Fee:              params.Fee,
		BalanceAfter:     params.BalanceAfter,
		CreatedAt:        time.Now(),
	}

	if err := s.receiptRepo.SaveReceipt(ctx, receipt); err != nil {
		s.LogError(ctx, err, "Failed to save receipt", slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	s.LogDebug(ctx, "Receipt recorded", slog.String("receipt_number", receiptNumber), slog.String("transaction_id", txn.TransactionID))
	return &receipt, nil
}

func (s *receiptService) GetReceiptByTransactionID(ctx context.Context, userID, transactionID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeReceiptAccess(ctx, userID, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) GetReceiptByNumber(ctx context.Context, userID, receiptNumber string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByNumber(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeReceiptAccess(ctx, userID, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Receipt, *string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	receipts, next, err := s.receiptRepo.ListReceiptsByPhone(ctx, user.PhoneNumber, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts", slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	if receipts == nil {
		receipts = []domain.Receipt{}
	}
	return receipts, next, nil
}

func (s *receiptService) MarkStatus(ctx context.Context, transactionID string, status domain.ReceiptStatus, balanceAfter *decimal.Decimal) error {
	receipt, err := s.receiptRepo.FindReceiptByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Receipts are best-effort; the transaction may have none
			s.LogDebug(ctx, "No receipt to mark", slog.String("transaction_id", transactionID))
			return nil
		}
		return err
	}
	if err := s.receiptRepo.UpdateReceiptStatus(ctx, receipt.ReceiptID, status, balanceAfter); err != nil {
		s.LogError(ctx, err, "Failed to update receipt status", slog.String("receipt_id", receipt.ReceiptID))
		return fmt.Errorf("failed to update receipt status: %w", err)
	}
	return nil
}

// authorizeReceiptAccess allows access only when the caller's phone number is
// on the receipt.
func (s *receiptService) authorizeReceiptAccess(ctx context.Context, userID string, receipt *domain.Receipt) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if receipt.SenderPhone != user.PhoneNumber && receipt.RecipientPhone != user.PhoneNumber {
		return apperrors.ErrForbidden
	}
	return nil
}

func receiptStatusForTxn(status domain.TransactionStatus) domain.ReceiptStatus {
	switch status {
	case domain.TxnCompleted:
		return domain.ReceiptSuccess
	case domain.TxnPending:
		return domain.ReceiptPending
	default:
		return domain.ReceiptFailed
	}
}
