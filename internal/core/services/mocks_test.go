package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portsrepo "github.com/vsend/vsend_wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByPhone(ctx context.Context, phoneNumber string) (*domain.Account, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, status, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountLimits(ctx context.Context, accountID string, daily, monthly decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, daily, monthly, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) CreditAccount(ctx context.Context, txn domain.Transaction) (*domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockLedgerRepository) DebitAccount(ctx context.Context, txn domain.Transaction) (*domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockLedgerRepository) TransferFunds(ctx context.Context, outTxn, inTxn domain.Transaction) (*domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, outTxn, inTxn)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SumDebitsSince(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, completedAt *time.Time) error {
	args := m.Called(ctx, transactionID, status, completedAt)
	return args.Error(0)
}

// --- Mock PinRepository ---
type MockPinRepository struct {
	mock.Mock
}

var _ portsrepo.PinRepository = (*MockPinRepository)(nil)

func (m *MockPinRepository) FindActiveCredentialByUserID(ctx context.Context, userID string) (*domain.PinCredential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PinCredential), args.Error(1)
}

func (m *MockPinRepository) SaveCredential(ctx context.Context, cred domain.PinCredential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockPinRepository) TouchLastUsed(ctx context.Context, credentialID string, at time.Time) error {
	args := m.Called(ctx, credentialID, at)
	return args.Error(0)
}

// --- Mock ReceiptRepository ---
type MockReceiptRepository struct {
	mock.Mock
}

var _ portsrepo.ReceiptRepository = (*MockReceiptRepository)(nil)

func (m *MockReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) FindReceiptByTransactionID(ctx context.Context, transactionID string) (*domain.Receipt, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindReceiptByNumber(ctx context.Context, receiptNumber string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) ListReceiptsByPhone(ctx context.Context, phoneNumber string, limit int, nextToken *string) ([]domain.Receipt, *string, error) {
	args := m.Called(ctx, phoneNumber, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Receipt), returnedNextToken, args.Error(2)
}

func (m *MockReceiptRepository) UpdateReceiptStatus(ctx context.Context, receiptID string, status domain.ReceiptStatus, balanceAfter *decimal.Decimal) error {
	args := m.Called(ctx, receiptID, status, balanceAfter)
	return args.Error(0)
}

// --- Mock PinService ---
type MockPinService struct {
	mock.Mock
}

var _ portssvc.PinSvcFacade = (*MockPinService)(nil)

func (m *MockPinService) SetupPin(ctx context.Context, userID, pin, confirmPin string) error {
	args := m.Called(ctx, userID, pin, confirmPin)
	return args.Error(0)
}

func (m *MockPinService) VerifyPin(ctx context.Context, userID, pin string) (bool, error) {
	args := m.Called(ctx, userID, pin)
	return args.Bool(0), args.Error(1)
}

func (m *MockPinService) HasPin(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPinService) ChangePin(ctx context.Context, userID, currentPin, newPin, confirmNewPin string) error {
	args := m.Called(ctx, userID, currentPin, newPin, confirmNewPin)
	return args.Error(0)
}

func (m *MockPinService) Authorize(ctx context.Context, userID, pin string) error {
	args := m.Called(ctx, userID, pin)
	return args.Error(0)
}

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
}

var _ portssvc.ReceiptSvcFacade = (*MockReceiptService)(nil)

func (m *MockReceiptService) Record(ctx context.Context, params portssvc.RecordReceiptParams) (*domain.Receipt, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) GetReceiptByTransactionID(ctx context.Context, userID, transactionID string) (*domain.Receipt, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) GetReceiptByNumber(ctx context.Context, userID, receiptNumber string) (*domain.Receipt, error) {
	args := m.Called(ctx, userID, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) ListReceipts(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Receipt, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Receipt), returnedNextToken, args.Error(2)
}

func (m *MockReceiptService) MarkStatus(ctx context.Context, transactionID string, status domain.ReceiptStatus, balanceAfter *decimal.Decimal) error {
	args := m.Called(ctx, transactionID, status, balanceAfter)
	return args.Error(0)
}

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

func (m *MockWalletService) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockWalletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.String(1), args.Error(2)
}

func (m *MockWalletService) Credit(ctx context.Context, params portssvc.CreditParams) (*domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockWalletService) Debit(ctx context.Context, params portssvc.DebitParams) (*domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockWalletService) Transfer(ctx context.Context, params portssvc.TransferFundsParams) (*domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockWalletService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockWalletService) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

// --- Mock PaymentGateway ---
type MockPaymentGateway struct {
	mock.Mock
}

var _ portssvc.PaymentGateway = (*MockPaymentGateway)(nil)

func (m *MockPaymentGateway) InitializePayment(ctx context.Context, params portssvc.InitializePaymentParams) (*portssvc.PaymentAuthorization, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.PaymentAuthorization), args.Error(1)
}

func (m *MockPaymentGateway) VerifyPayment(ctx context.Context, reference string) (*portssvc.PaymentVerification, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.PaymentVerification), args.Error(1)
}

func (m *MockPaymentGateway) ListBanks(ctx context.Context) ([]portssvc.Bank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portssvc.Bank), args.Error(1)
}

func (m *MockPaymentGateway) ResolveAccountNumber(ctx context.Context, accountNumber, bankCode string) (*portssvc.ResolvedAccount, error) {
	args := m.Called(ctx, accountNumber, bankCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ResolvedAccount), args.Error(1)
}

func (m *MockPaymentGateway) CreateTransferRecipient(ctx context.Context, params portssvc.TransferRecipientParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) InitiateTransfer(ctx context.Context, params portssvc.TransferParams) (*portssvc.TransferResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.TransferResult), args.Error(1)
}
