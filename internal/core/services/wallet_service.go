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

// walletService runs every balance movement through the same pipeline:
// authorize (debit-like moves only), validate the amount, check spend limits,
// move funds through the ledger repository, record a receipt. The ledger
// repository serializes concurrent moves per account; this service never
// computes a new balance itself.
type walletService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	userRepo    portsrepo.UserReader
	ledgerRepo  portsrepo.LedgerRepository
	pinSvc      portssvc.PinSvcFacade
	receiptSvc  portssvc.ReceiptSvcFacade
}

// NewWalletService creates the wallet service.
func NewWalletService(
	accountRepo portsrepo.AccountRepository,
	userRepo portsrepo.UserReader,
	ledgerRepo portsrepo.LedgerRepository,
	pinSvc portssvc.PinSvcFacade,
	receiptSvc portssvc.ReceiptSvcFacade,
) portssvc.WalletSvcFacade {
	return &walletService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		ledgerRepo:  ledgerRepo,
		pinSvc:      pinSvc,
		receiptSvc:  receiptSvc,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by user ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return account, nil
}

func (s *walletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, string, error) {
	account, err := s.GetAccountByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, "", err
	}
	return account.Balance, account.CurrencyCode, nil
}

func (s *walletService) Credit(ctx context.Context, params portssvc.CreditParams) (*domain.Transaction, decimal.Decimal, error) {
	if err := validateAmount(params.Amount); err != nil {
		return nil, decimal.Zero, err
	}

	account, err := s.GetAccountByUserID(ctx, params.UserID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !account.IsActive() {
		return nil, decimal.Zero, apperrors.ErrAccountNotActive
	}

	reference := params.Reference
	if reference == "" {
		reference, err = utils.GenerateReference(utils.TopUpReferencePrefix)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("failed to generate reference: %w", err)
		}
	}

	txn := s.newTransaction(account, params.Type, params.Amount, params.Description, reference)

	saved, balanceAfter, err := s.ledgerRepo.CreditAccount(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to credit account", slog.String("account_id", account.AccountID), slog.String("reference", reference))
		return nil, decimal.Zero, err
	}

	s.LogInfo(ctx, "Account credited",
		slog.String("account_id", account.AccountID),
		slog.String("transaction_id", saved.TransactionID),
		slog.String("amount", params.Amount.String()),
	)

	user, userErr := s.userRepo.FindUserByID(ctx, params.UserID)
	if userErr == nil {
		s.recordReceipt(ctx, *saved, domain.Counterparty{
			SenderName:     creditSenderName(params.Type),
			RecipientName:  user.DisplayName(),
			RecipientPhone: user.PhoneNumber,
		}, balanceAfter, reference)
	}

	return saved, balanceAfter, nil
}

func (s *walletService) Debit(ctx context.Context, params portssvc.DebitParams) (*domain.Transaction, decimal.Decimal, error) {
	// PIN gate runs before any account state is read
	if err := s.pinSvc.Authorize(ctx, params.UserID, params.Pin); err != nil {
		return nil, decimal.Zero, err
	}
	if err := validateAmount(params.Amount); err != nil {
		return nil, decimal.Zero, err
	}

	account, err := s.GetAccountByUserID(ctx, params.UserID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !account.IsActive() {
		return nil, decimal.Zero, apperrors.ErrAccountNotActive
	}

	if err := s.checkLimits(ctx, account, params.Amount); err != nil {
		return nil, decimal.Zero, err
	}

	reference := params.Reference
	if reference == "" {
		reference, err = utils.GenerateReference(utils.WithdrawalReferencePrefix)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("failed to generate reference: %w", err)
		}
	}

	txn := s.newTransaction(account, params.Type, params.Amount, params.Description, reference)

	saved, balanceAfter, err := s.ledgerRepo.DebitAccount(ctx, txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrAccountNotActive) {
			s.LogError(ctx, err, "Failed to debit account", slog.String("account_id", account.AccountID), slog.String("reference", reference))
		}
		return nil, decimal.Zero, err
	}

	s.LogInfo(ctx, "Account debited",
		slog.String("account_id", account.AccountID),
		slog.String("transaction_id", saved.TransactionID),
		slog.String("amount", params.Amount.String()),
	)

	user, userErr := s.userRepo.FindUserByID(ctx, params.UserID)
	if userErr == nil {
		s.recordReceipt(ctx, *saved, domain.Counterparty{
			SenderName:  user.DisplayName(),
			SenderPhone: user.PhoneNumber,
		}, balanceAfter, reference)
	}

	return saved, balanceAfter, nil
}

func (s *walletService) Transfer(ctx context.Context, params portssvc.TransferFundsParams) (*domain.Transaction, decimal.Decimal, error) {
	if err := s.pinSvc.Authorize(ctx, params.SenderUserID, params.Pin); err != nil {
		return nil, decimal.Zero, err
	}
	if err := validateAmount(params.Amount); err != nil {
		return nil, decimal.Zero, err
	}

	recipientPhone, err := utils.NormalizePhoneNumber(params.RecipientPhone)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	sender, err := s.userRepo.FindUserByID(ctx, params.SenderUserID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	senderAccount, err := s.GetAccountByUserID(ctx, params.SenderUserID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !senderAccount.IsActive() {
		return nil, decimal.Zero, apperrors.ErrAccountNotActive
	}

	recipient, err := s.userRepo.FindUserByPhone(ctx, recipientPhone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, decimal.Zero, apperrors.ErrRecipientNotFound
		}
		return nil, decimal.Zero, err
	}
	recipientAccount, err := s.accountRepo.FindAccountByUserID(ctx, recipient.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, decimal.Zero, apperrors.ErrRecipientNotFound
		}
		return nil, decimal.Zero, err
	}
	if !recipientAccount.IsActive() {
		return nil, decimal.Zero, apperrors.ErrRecipientNotFound
	}

	if senderAccount.AccountID == recipientAccount.AccountID {
		return nil, decimal.Zero, apperrors.ErrSelfTransfer
	}
	if senderAccount.CurrencyCode != recipientAccount.CurrencyCode {
		return nil, decimal.Zero, apperrors.ErrCurrencyMismatch
	}

	if err := s.checkLimits(ctx, senderAccount, params.Amount); err != nil {
		return nil, decimal.Zero, err
	}

	reference, err := utils.GenerateReference(utils.TransferReferencePrefix)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to generate reference: %w", err)
	}

	outTxn := s.newTransaction(senderAccount, domain.TransferOut, params.Amount, params.Description, reference)
	outTxn.CounterpartyPhone = recipient.PhoneNumber
	inTxn := s.newTransaction(recipientAccount, domain.TransferIn, params.Amount, params.Description, reference)
	inTxn.CounterpartyPhone = sender.PhoneNumber

	saved, balanceAfter, err := s.ledgerRepo.TransferFunds(ctx, outTxn, inTxn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrAccountNotActive) {
			s.LogError(ctx, err, "Failed to transfer funds",
				slog.String("sender_account_id", senderAccount.AccountID),
				slog.String("recipient_account_id", recipientAccount.AccountID),
				slog.String("reference", reference),
			)
		}
		return nil, decimal.Zero, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("reference", reference),
		slog.String("amount", params.Amount.String()),
	)

	s.recordReceipt(ctx, *saved, domain.Counterparty{
		SenderName:     sender.DisplayName(),
		SenderPhone:    sender.PhoneNumber,
		RecipientName:  recipient.DisplayName(),
		RecipientPhone: recipient.PhoneNumber,
	}, balanceAfter, reference)

	return saved, balanceAfter, nil
}

func (s *walletService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	account, err := s.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.AccountID != account.AccountID {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

func (s *walletService) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	account, err := s.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	txns, next, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, account.AccountID, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", account.AccountID))
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}

// checkLimits compares the proposed debit against the daily and monthly
// ceilings. The sums include pending debits, so an in-flight withdrawal counts
// against the limit even before the gateway settles it. A move landing exactly
// on the limit is allowed.
func (s *walletService) checkLimits(ctx context.Context, account *domain.Account, amount decimal.Decimal) error {
	now := time.Now()

	if account.DailyLimit.IsPositive() {
		spentToday, err := s.ledgerRepo.SumDebitsSince(ctx, account.AccountID, domain.StartOfDay(now))
		if err != nil {
			s.LogError(ctx, err, "Failed to sum daily debits", slog.String("account_id", account.AccountID))
			return fmt.Errorf("failed to check daily limit: %w", err)
		}
		if spentToday.Add(amount).GreaterThan(account.DailyLimit) {
			return apperrors.ErrDailyLimitExceeded
		}
	}

	if account.MonthlyLimit.IsPositive() {
		spentThisMonth, err := s.ledgerRepo.SumDebitsSince(ctx, account.AccountID, domain.StartOfMonth(now))
		if err != nil {
			s.LogError(ctx, err, "Failed to sum monthly debits", slog.String("account_id", account.AccountID))
			return fmt.Errorf("failed to check monthly limit: %w", err)
		}
		if spentThisMonth.Add(amount).GreaterThan(account.MonthlyLimit) {
			return apperrors.ErrMonthlyLimitExceeded
		}
	}

	return nil
}

// recordReceipt is best-effort: a receipt failure is logged, never surfaced.
func (s *walletService) recordReceipt(ctx context.Context, txn domain.Transaction, cp domain.Counterparty, balanceAfter decimal.Decimal, paymentReference string) {
	_, err := s.receiptSvc.Record(ctx, portssvc.RecordReceiptParams{
		Transaction:      txn,
		Sender:           domain.Counterparty{SenderName: cp.SenderName, SenderPhone: cp.SenderPhone},
		Recipient:        domain.Counterparty{RecipientName: cp.RecipientName, RecipientPhone: cp.RecipientPhone},
		Fee:              decimal.Zero,
		BalanceAfter:     balanceAfter,
		PaymentReference: paymentReference,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record receipt", slog.String("transaction_id", txn.TransactionID))
	}
}

func (s *walletService) newTransaction(account *domain.Account, txnType domain.TransactionType, amount decimal.Decimal, description, reference string) domain.Transaction {
	now := time.Now()
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Type:          txnType,
		Amount:        amount,
		CurrencyCode:  account.CurrencyCode,
		Description:   description,
		Reference:     reference,
		Status:        domain.TxnCompleted,
		CreatedAt:     now,
		CompletedAt:   &now,
	}
}

// validateAmount enforces positive amounts with at most two fractional digits.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

func creditSenderName(txnType domain.TransactionType) string {
	if txnType == domain.TopUp {
		return "Wallet Top Up"
	}
	return "V-Send"
}
