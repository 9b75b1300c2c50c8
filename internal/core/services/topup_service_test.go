package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/core/services"
)

type TopUpServiceTestSuite struct {
	suite.Suite
	mockWalletSvc   *MockWalletService
	mockReceiptSvc  *MockReceiptService
	mockUserRepo    *MockUserRepository
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockGateway     *MockPaymentGateway
	service         portssvc.TopUpSvcFacade

	user    domain.User
	account domain.Account
}

func (suite *TopUpServiceTestSuite) SetupTest() {
	suite.mockWalletSvc = new(MockWalletService)
	suite.mockReceiptSvc = new(MockReceiptService)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockGateway = new(MockPaymentGateway)
	suite.service = services.NewTopUpService(
		suite.mockWalletSvc,
		suite.mockReceiptSvc,
		suite.mockUserRepo,
		suite.mockAccountRepo,
		suite.mockLedgerRepo,
		suite.mockGateway,
		"GHS",
	)

	suite.user = domain.User{
		UserID:      uuid.NewString(),
		PhoneNumber: "0551234567",
		FirstName:   "Ama",
		IsActive:    true,
	}
	suite.account = domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.user.UserID,
		Balance:      decimal.NewFromInt(300),
		CurrencyCode: "GHS",
		Status:       domain.AccountActive,
	}
}

func (suite *TopUpServiceTestSuite) TestInitiateTopUp_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(&suite.user, nil).Once()
	suite.mockWalletSvc.On("GetAccountByUserID", ctx, suite.user.UserID).Return(&suite.account, nil).Once()

	var captured portssvc.InitializePaymentParams
	suite.mockGateway.On("InitializePayment", ctx, mock.AnythingOfType("services.InitializePaymentParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portssvc.InitializePaymentParams)
		}).
		Return(&portssvc.PaymentAuthorization{AuthorizationURL: "https://checkout.example/abc", Reference: "ref"}, nil).Once()

	auth, err := suite.service.InitiateTopUp(ctx, suite.user.UserID, amount, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(auth)
	suite.NotEmpty(auth.AuthorizationURL)

	// No email supplied, so one is synthesized from the phone number
	suite.Equal("0551234567@vsend.app", captured.Email)
	suite.Equal("GHS", captured.Currency)
	suite.True(captured.Amount.Equal(amount))
	suite.Contains(captured.Reference, "VS_TOP")
	suite.Equal(suite.user.UserID, captured.Metadata["user_id"])
}

func (suite *TopUpServiceTestSuite) TestInitiateTopUp_InvalidAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5), decimal.RequireFromString("1.005")} {
		_, err := suite.service.InitiateTopUp(ctx, suite.user.UserID, amount, "")
		suite.ErrorIs(err, apperrors.ErrInvalidAmount, "amount %s", amount)
	}
	suite.mockGateway.AssertNotCalled(suite.T(), "InitializePayment", mock.Anything, mock.Anything)
}

func (suite *TopUpServiceTestSuite) TestCompleteTopUp_CreditsVerifiedAmount() {
	ctx := context.Background()
	reference := "VS_TOP_20260828120000_abcd1234"

	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, reference).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockGateway.On("VerifyPayment", ctx, reference).Return(&portssvc.PaymentVerification{
		Reference: reference,
		Status:    "success",
		Amount:    decimal.NewFromInt(150), // gateway's figure, not the client's
		Currency:  "GHS",
		Metadata:  map[string]string{"user_id": suite.user.UserID},
	}, nil).Once()

	savedTxn := domain.Transaction{TransactionID: uuid.NewString(), Type: domain.TopUp, Reference: reference}
	var captured portssvc.CreditParams
	suite.mockWalletSvc.On("Credit", ctx, mock.AnythingOfType("services.CreditParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portssvc.CreditParams)
		}).
		Return(&savedTxn, decimal.NewFromInt(450), nil).Once()

	txn, err := suite.service.CompleteTopUp(ctx, suite.user.UserID, reference)

	suite.Require().NoError(err)
	suite.Equal(savedTxn.TransactionID, txn.TransactionID)
	suite.True(captured.Amount.Equal(decimal.NewFromInt(150)))
	suite.Equal(domain.TopUp, captured.Type)
	suite.Equal(reference, captured.Reference)
}

func (suite *TopUpServiceTestSuite) TestCompleteTopUp_IdempotentOnKnownReference() {
	ctx := context.Background()
	reference := "VS_TOP_20260828120000_abcd1234"
	existing := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.account.AccountID,
		Type:          domain.TopUp,
		Reference:     reference,
	}

	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, reference).Return(&existing, nil).Once()
	suite.mockWalletSvc.On("GetAccountByUserID", ctx, suite.user.UserID).Return(&suite.account, nil).Once()

	txn, err := suite.service.CompleteTopUp(ctx, suite.user.UserID, reference)

	suite.Require().NoError(err)
	suite.Equal(existing.TransactionID, txn.TransactionID)
	suite.mockGateway.AssertNotCalled(suite.T(), "VerifyPayment", mock.Anything, mock.Anything)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything)
}

func (suite *TopUpServiceTestSuite) TestCompleteTopUp_AnotherUsersPaymentRejected() {
	ctx := context.Background()
	reference := "VS_TOP_20260828120000_abcd1234"
	payerID := uuid.NewString()

	// Verified and paid, but the reference was initiated by someone else
	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, reference).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockGateway.On("VerifyPayment", ctx, reference).Return(&portssvc.PaymentVerification{
		Reference: reference,
		Status:    "success",
		Amount:    decimal.NewFromInt(500),
		Currency:  "GHS",
		Metadata:  map[string]string{"user_id": payerID},
	}, nil).Once()

	_, err := suite.service.CompleteTopUp(ctx, suite.user.UserID, reference)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything)
}

func (suite *TopUpServiceTestSuite) TestCompleteTopUp_ReplayOfAnotherWalletsCreditRejected() {
	ctx := context.Background()
	reference := "VS_TOP_20260828120000_abcd1234"
	existing := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     uuid.NewString(), // someone else's account
		Type:          domain.TopUp,
		Reference:     reference,
	}

	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, reference).Return(&existing, nil).Once()
	suite.mockWalletSvc.On("GetAccountByUserID", ctx, suite.user.UserID).Return(&suite.account, nil).Once()

	_, err := suite.service.CompleteTopUp(ctx, suite.user.UserID, reference)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockGateway.AssertNotCalled(suite.T(), "VerifyPayment", mock.Anything, mock.Anything)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything)
}

func (suite *TopUpServiceTestSuite) TestCompleteTopUp_RejectedVerification() {
	ctx := context.Background()
	reference := "VS_TOP_20260828120000_abcd1234"

	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, reference).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockGateway.On("VerifyPayment", ctx, reference).Return(&portssvc.PaymentVerification{
		Reference: reference,
		Status:    "abandoned",
	}, nil).Once()

	_, err := suite.service.CompleteTopUp(ctx, suite.user.UserID, reference)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything)
}

func (suite *TopUpServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(80)

	savedTxn := domain.Transaction{TransactionID: uuid.NewString(), Type: domain.Withdrawal, Amount: amount, Reference: "VS_WDL_x"}
	suite.mockWalletSvc.On("Debit", ctx, mock.AnythingOfType("services.DebitParams")).
		Return(&savedTxn, decimal.NewFromInt(220), nil).Once()
	suite.mockGateway.On("CreateTransferRecipient", ctx, mock.AnythingOfType("services.TransferRecipientParams")).
		Return("RCP_123", nil).Once()
	suite.mockGateway.On("InitiateTransfer", ctx, mock.AnythingOfType("services.TransferParams")).
		Return(&portssvc.TransferResult{TransferCode: "TRF_456", Status: "pending"}, nil).Once()

	txn, err := suite.service.Withdraw(ctx, portssvc.WithdrawParams{
		UserID:        suite.user.UserID,
		Amount:        amount,
		BankCode:      "058",
		AccountNumber: "0123456789",
		AccountName:   "Ama Mensah",
		Pin:           "1234",
	})

	suite.Require().NoError(err)
	suite.Equal(savedTxn.TransactionID, txn.TransactionID)
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *TopUpServiceTestSuite) TestWithdraw_PayoutFailureRefunds() {
	ctx := context.Background()
	amount := decimal.NewFromInt(80)

	savedTxn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.Withdrawal,
		Amount:        amount,
		Reference:     "VS_WDL_20260828120000_abcd1234",
	}
	suite.mockWalletSvc.On("Debit", ctx, mock.AnythingOfType("services.DebitParams")).
		Return(&savedTxn, decimal.NewFromInt(220), nil).Once()
	suite.mockGateway.On("CreateTransferRecipient", ctx, mock.AnythingOfType("services.TransferRecipientParams")).
		Return("", assert.AnError).Once()

	suite.mockLedgerRepo.On("UpdateTransactionStatus", ctx, savedTxn.TransactionID, domain.TxnFailed, mock.AnythingOfType("*time.Time")).Return(nil).Once()
	suite.mockReceiptSvc.On("MarkStatus", ctx, savedTxn.TransactionID, domain.ReceiptFailed, (*decimal.Decimal)(nil)).Return(nil).Once()

	var refund portssvc.CreditParams
	suite.mockWalletSvc.On("Credit", ctx, mock.AnythingOfType("services.CreditParams")).
		Run(func(args mock.Arguments) {
			refund = args.Get(1).(portssvc.CreditParams)
		}).
		Return(&domain.Transaction{TransactionID: uuid.NewString()}, decimal.NewFromInt(300), nil).Once()

	_, err := suite.service.Withdraw(ctx, portssvc.WithdrawParams{
		UserID:        suite.user.UserID,
		Amount:        amount,
		BankCode:      "058",
		AccountNumber: "0123456789",
		AccountName:   "Ama Mensah",
		Pin:           "1234",
	})

	suite.Require().Error(err)
	suite.True(refund.Amount.Equal(amount))
	suite.Equal(savedTxn.Reference+"_RVSL", refund.Reference)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockReceiptSvc.AssertExpectations(suite.T())
}

func (suite *TopUpServiceTestSuite) TestWithdraw_PinRejected() {
	ctx := context.Background()

	suite.mockWalletSvc.On("Debit", ctx, mock.AnythingOfType("services.DebitParams")).
		Return(nil, decimal.Zero, apperrors.ErrInvalidPin).Once()

	_, err := suite.service.Withdraw(ctx, portssvc.WithdrawParams{
		UserID:        suite.user.UserID,
		Amount:        decimal.NewFromInt(80),
		BankCode:      "058",
		AccountNumber: "0123456789",
		AccountName:   "Ama Mensah",
		Pin:           "0000",
	})

	suite.ErrorIs(err, apperrors.ErrInvalidPin)
	suite.mockGateway.AssertNotCalled(suite.T(), "CreateTransferRecipient", mock.Anything, mock.Anything)
}

func (suite *TopUpServiceTestSuite) TestHandleWebhookEvent_ChargeSuccess() {
	ctx := context.Background()
	reference := "VS_TOP_20260828120000_abcd1234"
	existing := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.account.AccountID,
		Type:          domain.TopUp,
		Reference:     reference,
	}

	// Already-completed reference short-circuits inside CompleteTopUp
	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, reference).Return(&existing, nil).Once()
	suite.mockWalletSvc.On("GetAccountByUserID", ctx, suite.user.UserID).Return(&suite.account, nil).Once()

	err := suite.service.HandleWebhookEvent(ctx, portssvc.WebhookEvent{
		Event:     "charge.success",
		Reference: reference,
		Metadata:  map[string]string{"user_id": suite.user.UserID},
	})

	suite.Require().NoError(err)
}

func (suite *TopUpServiceTestSuite) TestHandleWebhookEvent_ChargeWithoutUserMetadata() {
	err := suite.service.HandleWebhookEvent(context.Background(), portssvc.WebhookEvent{
		Event:     "charge.success",
		Reference: "VS_TOP_x",
	})

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindTransactionByReference", mock.Anything, mock.Anything)
}

func (suite *TopUpServiceTestSuite) TestHandleWebhookEvent_TransferFailedRefunds() {
	ctx := context.Background()
	withdrawal := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.account.AccountID,
		Type:          domain.Withdrawal,
		Amount:        decimal.NewFromInt(80),
		Reference:     "VS_WDL_20260828120000_abcd1234",
		Status:        domain.TxnCompleted,
	}

	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, withdrawal.Reference).Return(&withdrawal, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockLedgerRepo.On("UpdateTransactionStatus", ctx, withdrawal.TransactionID, domain.TxnFailed, mock.AnythingOfType("*time.Time")).Return(nil).Once()
	suite.mockReceiptSvc.On("MarkStatus", ctx, withdrawal.TransactionID, domain.ReceiptFailed, (*decimal.Decimal)(nil)).Return(nil).Once()
	suite.mockWalletSvc.On("Credit", ctx, mock.AnythingOfType("services.CreditParams")).
		Return(&domain.Transaction{TransactionID: uuid.NewString()}, decimal.NewFromInt(300), nil).Once()

	err := suite.service.HandleWebhookEvent(ctx, portssvc.WebhookEvent{
		Event:     "transfer.failed",
		Reference: withdrawal.Reference,
	})

	suite.Require().NoError(err)
	suite.mockWalletSvc.AssertExpectations(suite.T())
}

func (suite *TopUpServiceTestSuite) TestHandleWebhookEvent_TransferFailedAlreadyRefunded() {
	ctx := context.Background()
	withdrawal := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.Withdrawal,
		Reference:     "VS_WDL_x",
		Status:        domain.TxnFailed,
	}

	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, withdrawal.Reference).Return(&withdrawal, nil).Once()

	err := suite.service.HandleWebhookEvent(ctx, portssvc.WebhookEvent{
		Event:     "transfer.failed",
		Reference: withdrawal.Reference,
	})

	suite.Require().NoError(err)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything)
}

func (suite *TopUpServiceTestSuite) TestHandleWebhookEvent_UnknownReferenceIgnored() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, "VS_WDL_unknown").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.HandleWebhookEvent(ctx, portssvc.WebhookEvent{
		Event:     "transfer.reversed",
		Reference: "VS_WDL_unknown",
	})

	suite.Require().NoError(err)
}

func (suite *TopUpServiceTestSuite) TestHandleWebhookEvent_PayoutSuccessIsNoOp() {
	err := suite.service.HandleWebhookEvent(context.Background(), portssvc.WebhookEvent{
		Event:     "transfer.success",
		Reference: "VS_WDL_20260828120000_aa11bb22",
	})

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindTransactionByReference", mock.Anything, mock.Anything)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything)
}

func (suite *TopUpServiceTestSuite) TestHandleWebhookEvent_UnrecognizedEventIgnored() {
	err := suite.service.HandleWebhookEvent(context.Background(), portssvc.WebhookEvent{
		Event: "subscription.create",
	})

	suite.Require().NoError(err)
}

func TestTopUpService(t *testing.T) {
	suite.Run(t, new(TopUpServiceTestSuite))
}
