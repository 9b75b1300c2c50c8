package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portsrepo "github.com/vsend/vsend_wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/utils"
)

// topupService bridges the payment gateway and the wallet ledger. The gateway
// is never trusted on its own: a top-up credits the wallet only after a
// server-side verification of the reference, and the transaction reference
// doubles as the idempotency key so a verified payment credits at most once.
type topupService struct {
	BaseService
	walletSvc   portssvc.WalletSvcFacade
	receiptSvc  portssvc.ReceiptSvcFacade
	userRepo    portsrepo.UserReader
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerRepository
	gateway     portssvc.PaymentGateway
	currency    string
}

// NewTopUpService creates the top-up and withdrawal service.
func NewTopUpService(
	walletSvc portssvc.WalletSvcFacade,
	receiptSvc portssvc.ReceiptSvcFacade,
	userRepo portsrepo.UserReader,
	accountRepo portsrepo.AccountReader,
	ledgerRepo portsrepo.LedgerRepository,
	gateway portssvc.PaymentGateway,
	currencyCode string,
) portssvc.TopUpSvcFacade {
	return &topupService{
		walletSvc:   walletSvc,
		receiptSvc:  receiptSvc,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		gateway:     gateway,
		currency:    currencyCode,
	}
}

var _ portssvc.TopUpSvcFacade = (*topupService)(nil)

func (s *topupService) InitiateTopUp(ctx context.Context, userID string, amount decimal.Decimal, email string) (*portssvc.PaymentAuthorization, error) {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return nil, apperrors.ErrInvalidAmount
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	account, err := s.walletSvc.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive() {
		return nil, apperrors.ErrAccountNotActive
	}

	reference, err := utils.GenerateReference(utils.TopUpReferencePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference: %w", err)
	}

	if email == "" {
		email = syntheticEmail(user.PhoneNumber)
	}

	auth, err := s.gateway.InitializePayment(ctx, portssvc.InitializePaymentParams{
		Email:     email,
		Amount:    amount,
		Currency:  account.CurrencyCode,
		Reference: reference,
		Metadata: map[string]string{
			"user_id": userID,
			"purpose": "wallet_topup",
		},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to initialize payment", slog.String("user_id", userID), slog.String("reference", reference))
		return nil, err
	}

	s.LogInfo(ctx, "Top-up initiated", slog.String("user_id", userID), slog.String("reference", reference), slog.String("amount", amount.String()))
	return auth, nil
}

// CompleteTopUp verifies the payment server-side and credits the wallet. The
// reference is the idempotency key: a reference that already produced a
// transaction returns that transaction without a second credit. A reference is
// bound to the user who initiated it; no other caller can claim the credit.
func (s *topupService) CompleteTopUp(ctx context.Context, userID, reference string) (*domain.Transaction, error) {
	if existing, err := s.ledgerRepo.FindTransactionByReference(ctx, reference); err == nil {
		account, accErr := s.walletSvc.GetAccountByUserID(ctx, userID)
		if accErr != nil {
			return nil, accErr
		}
		if existing.AccountID != account.AccountID {
			s.LogWarn(ctx, "Top-up reference already credited to another wallet", slog.String("reference", reference), slog.String("user_id", userID))
			return nil, apperrors.ErrForbidden
		}
		s.LogInfo(ctx, "Top-up already completed", slog.String("reference", reference), slog.String("transaction_id", existing.TransactionID))
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	verification, err := s.gateway.VerifyPayment(ctx, reference)
	if err != nil {
		s.LogError(ctx, err, "Failed to verify payment", slog.String("reference", reference))
		return nil, err
	}
	if !verification.Succeeded() {
		s.LogInfo(ctx, "Top-up verification rejected", slog.String("reference", reference), slog.String("status", verification.Status))
		return nil, fmt.Errorf("%w: payment not successful (%s)", apperrors.ErrValidation, verification.Status)
	}
	if verification.Metadata["user_id"] != userID {
		s.LogWarn(ctx, "Top-up reference was initiated by another user", slog.String("reference", reference), slog.String("user_id", userID))
		return nil, apperrors.ErrForbidden
	}

	// The credited amount comes from the gateway's record, not the client
	txn, _, err := s.walletSvc.Credit(ctx, portssvc.CreditParams{
		UserID:      userID,
		Amount:      verification.Amount,
		Type:        domain.TopUp,
		Description: "Wallet top up",
		Reference:   reference,
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Top-up completed", slog.String("reference", reference), slog.String("transaction_id", txn.TransactionID))
	return txn, nil
}

// Withdraw debits the wallet first and then initiates the bank payout. A
// payout that fails to initiate refunds the debit under a linked reference and
// marks the withdrawal failed.
func (s *topupService) Withdraw(ctx context.Context, params portssvc.WithdrawParams) (*domain.Transaction, error) {
	accountName := params.AccountName
	if accountName == "" {
		resolved, err := s.gateway.ResolveAccountNumber(ctx, params.AccountNumber, params.BankCode)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve bank account", slog.String("bank_code", params.BankCode))
			return nil, fmt.Errorf("%w: could not resolve bank account", apperrors.ErrValidation)
		}
		accountName = resolved.AccountName
	}

	reference, err := utils.GenerateReference(utils.WithdrawalReferencePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference: %w", err)
	}

	description := params.Description
	if description == "" {
		description = fmt.Sprintf("Withdrawal to %s", accountName)
	}

	txn, _, err := s.walletSvc.Debit(ctx, portssvc.DebitParams{
		UserID:      params.UserID,
		Amount:      params.Amount,
		Type:        domain.Withdrawal,
		Description: description,
		Reference:   reference,
		Pin:         params.Pin,
	})
	if err != nil {
		return nil, err
	}

	recipientCode, err := s.gateway.CreateTransferRecipient(ctx, portssvc.TransferRecipientParams{
		Type:          "nuban",
		Name:          accountName,
		AccountNumber: params.AccountNumber,
		BankCode:      params.BankCode,
		Currency:      s.currency,
	})
	if err == nil {
		_, err = s.gateway.InitiateTransfer(ctx, portssvc.TransferParams{
			RecipientCode: recipientCode,
			Amount:        params.Amount,
			Reason:        description,
			Reference:     reference,
		})
	}
	if err != nil {
		s.LogError(ctx, err, "Payout initiation failed, refunding", slog.String("reference", reference))
		s.refundWithdrawal(ctx, params.UserID, *txn)
		return nil, fmt.Errorf("failed to initiate payout: %w", err)
	}

	s.LogInfo(ctx, "Withdrawal initiated", slog.String("reference", reference), slog.String("transaction_id", txn.TransactionID))
	return txn, nil
}

func (s *topupService) ListBanks(ctx context.Context) ([]portssvc.Bank, error) {
	banks, err := s.gateway.ListBanks(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list banks")
		return nil, err
	}
	return banks, nil
}

func (s *topupService) ResolveBankAccount(ctx context.Context, accountNumber, bankCode string) (*portssvc.ResolvedAccount, error) {
	resolved, err := s.gateway.ResolveAccountNumber(ctx, accountNumber, bankCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve bank account", slog.String("bank_code", bankCode))
		return nil, err
	}
	return resolved, nil
}

// HandleWebhookEvent applies asynchronous gateway outcomes. Events it does not
// recognize are logged and dropped; the webhook endpoint always acknowledges.
func (s *topupService) HandleWebhookEvent(ctx context.Context, event portssvc.WebhookEvent) error {
	switch event.Event {
	case "charge.success":
		userID := event.Metadata["user_id"]
		if userID == "" {
			s.LogInfo(ctx, "Webhook charge without user metadata, skipping", slog.String("reference", event.Reference))
			return nil
		}
		_, err := s.CompleteTopUp(ctx, userID, event.Reference)
		return err

	case "transfer.success":
		// The withdrawal debit was taken up front; a successful payout changes nothing
		s.LogDebug(ctx, "Payout confirmed", slog.String("reference", event.Reference))
		return nil

	case "transfer.failed", "transfer.reversed":
		return s.handleFailedPayout(ctx, event.Reference)

	default:
		s.LogDebug(ctx, "Ignoring webhook event", slog.String("event", event.Event))
		return nil
	}
}

// handleFailedPayout refunds a withdrawal whose payout failed after
// initiation. Idempotent: a withdrawal already marked failed is skipped.
func (s *topupService) handleFailedPayout(ctx context.Context, reference string) error {
	txn, err := s.ledgerRepo.FindTransactionByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Webhook payout failure for unknown reference", slog.String("reference", reference))
			return nil
		}
		return err
	}
	if txn.Type != domain.Withdrawal || txn.Status == domain.TxnFailed {
		return nil
	}
	account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		return err
	}
	s.refundWithdrawal(ctx, account.UserID, *txn)
	return nil
}

// refundWithdrawal posts the compensating credit and marks the withdrawal
// failed. Failures here are logged loudly: a stuck refund needs an operator.
func (s *topupService) refundWithdrawal(ctx context.Context, userID string, txn domain.Transaction) {
	now := time.Now()
	if err := s.ledgerRepo.UpdateTransactionStatus(ctx, txn.TransactionID, domain.TxnFailed, &now); err != nil {
		s.LogError(ctx, err, "Failed to mark withdrawal failed", slog.String("transaction_id", txn.TransactionID))
	}
	if err := s.receiptSvc.MarkStatus(ctx, txn.TransactionID, domain.ReceiptFailed, nil); err != nil {
		s.LogError(ctx, err, "Failed to mark receipt failed", slog.String("transaction_id", txn.TransactionID))
	}

	_, _, err := s.walletSvc.Credit(ctx, portssvc.CreditParams{
		UserID:      userID,
		Amount:      txn.Amount,
		Type:        domain.Credit,
		Description: "Withdrawal reversal",
		Reference:   txn.Reference + "_RVSL",
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to refund withdrawal",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("reference", txn.Reference),
		)
	}
}

func syntheticEmail(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return digits + "@vsend.app"
}
