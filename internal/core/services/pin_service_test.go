package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/core/services"
)

type PinServiceTestSuite struct {
	suite.Suite
	mockPinRepo *MockPinRepository
	service     portssvc.PinSvcFacade
	userID      string
}

func (suite *PinServiceTestSuite) SetupTest() {
	suite.mockPinRepo = new(MockPinRepository)
	suite.service = services.NewPinService(suite.mockPinRepo)
	suite.userID = uuid.NewString()
}

// setupAndCapture runs SetupPin and returns the credential the service built,
// so verification tests exercise the real hashing.
func (suite *PinServiceTestSuite) setupAndCapture(pin string) domain.PinCredential {
	var captured domain.PinCredential
	suite.mockPinRepo.On("SaveCredential", mock.Anything, mock.AnythingOfType("domain.PinCredential")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.PinCredential)
		}).
		Return(nil).Once()

	err := suite.service.SetupPin(context.Background(), suite.userID, pin, pin)
	suite.Require().NoError(err)
	return captured
}

func (suite *PinServiceTestSuite) TestSetupAndVerify_RoundTrip() {
	ctx := context.Background()
	cred := suite.setupAndCapture("4321")

	suite.Equal(suite.userID, cred.UserID)
	suite.True(cred.IsActive)
	suite.NotEmpty(cred.HashedPin)
	suite.NotEmpty(cred.Salt)
	suite.NotEqual("4321", cred.HashedPin)

	suite.mockPinRepo.On("FindActiveCredentialByUserID", ctx, suite.userID).Return(&cred, nil).Once()
	suite.mockPinRepo.On("TouchLastUsed", ctx, cred.CredentialID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	ok, err := suite.service.VerifyPin(ctx, suite.userID, "4321")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.mockPinRepo.AssertExpectations(suite.T())
}

func (suite *PinServiceTestSuite) TestVerifyPin_WrongPin() {
	ctx := context.Background()
	cred := suite.setupAndCapture("4321")

	suite.mockPinRepo.On("FindActiveCredentialByUserID", ctx, suite.userID).Return(&cred, nil).Once()

	ok, err := suite.service.VerifyPin(ctx, suite.userID, "9999")

	suite.Require().NoError(err)
	suite.False(ok)
	suite.mockPinRepo.AssertNotCalled(suite.T(), "TouchLastUsed", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PinServiceTestSuite) TestVerifyPin_NotSetup() {
	ctx := context.Background()
	suite.mockPinRepo.On("FindActiveCredentialByUserID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.VerifyPin(ctx, suite.userID, "1234")

	suite.ErrorIs(err, apperrors.ErrPinNotSetup)
}

func (suite *PinServiceTestSuite) TestVerifyPin_TouchFailureIsIgnored() {
	ctx := context.Background()
	cred := suite.setupAndCapture("4321")

	suite.mockPinRepo.On("FindActiveCredentialByUserID", ctx, suite.userID).Return(&cred, nil).Once()
	suite.mockPinRepo.On("TouchLastUsed", ctx, cred.CredentialID, mock.AnythingOfType("time.Time")).Return(assert.AnError).Once()

	ok, err := suite.service.VerifyPin(ctx, suite.userID, "4321")

	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *PinServiceTestSuite) TestSetupPin_FormatValidation() {
	ctx := context.Background()

	for _, pin := range []string{"123", "1234567", "12a4", ""} {
		err := suite.service.SetupPin(ctx, suite.userID, pin, pin)
		suite.ErrorIs(err, apperrors.ErrValidation, "pin %q", pin)
	}
	suite.mockPinRepo.AssertNotCalled(suite.T(), "SaveCredential", mock.Anything, mock.Anything)
}

func (suite *PinServiceTestSuite) TestSetupPin_ConfirmMismatch() {
	err := suite.service.SetupPin(context.Background(), suite.userID, "1234", "4321")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPinRepo.AssertNotCalled(suite.T(), "SaveCredential", mock.Anything, mock.Anything)
}

func (suite *PinServiceTestSuite) TestChangePin_Rotation() {
	ctx := context.Background()
	cred := suite.setupAndCapture("1234")

	suite.mockPinRepo.On("FindActiveCredentialByUserID", ctx, suite.userID).Return(&cred, nil).Once()
	suite.mockPinRepo.On("TouchLastUsed", ctx, cred.CredentialID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	var rotated domain.PinCredential
	suite.mockPinRepo.On("SaveCredential", ctx, mock.AnythingOfType("domain.PinCredential")).
		Run(func(args mock.Arguments) {
			rotated = args.Get(1).(domain.PinCredential)
		}).
		Return(nil).Once()

	err := suite.service.ChangePin(ctx, suite.userID, "1234", "5678", "5678")

	suite.Require().NoError(err)
	suite.NotEqual(cred.CredentialID, rotated.CredentialID)
	suite.NotEqual(cred.HashedPin, rotated.HashedPin)
	suite.mockPinRepo.AssertExpectations(suite.T())
}

func (suite *PinServiceTestSuite) TestChangePin_WrongCurrentPin() {
	ctx := context.Background()
	cred := suite.setupAndCapture("1234")

	suite.mockPinRepo.On("FindActiveCredentialByUserID", ctx, suite.userID).Return(&cred, nil).Once()

	err := suite.service.ChangePin(ctx, suite.userID, "0000", "5678", "5678")

	suite.ErrorIs(err, apperrors.ErrInvalidPin)
}

func (suite *PinServiceTestSuite) TestAuthorize_MismatchBecomesInvalidPin() {
	ctx := context.Background()
	cred := suite.setupAndCapture("1234")

	suite.mockPinRepo.On("FindActiveCredentialByUserID", ctx, suite.userID).Return(&cred, nil).Once()

	err := suite.service.Authorize(ctx, suite.userID, "1111")

	suite.ErrorIs(err, apperrors.ErrInvalidPin)
}

func (suite *PinServiceTestSuite) TestHasPin() {
	ctx := context.Background()
	cred := suite.setupAndCapture("1234")

	suite.mockPinRepo.On("FindActiveCredentialByUserID", ctx, suite.userID).Return(&cred, nil).Once()
	has, err := suite.service.HasPin(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.True(has)

	other := uuid.NewString()
	suite.mockPinRepo.On("FindActiveCredentialByUserID", ctx, other).Return(nil, apperrors.ErrNotFound).Once()
	has, err = suite.service.HasPin(ctx, other)
	suite.Require().NoError(err)
	suite.False(has)
}

func TestPinService(t *testing.T) {
	suite.Run(t, new(PinServiceTestSuite))
}
