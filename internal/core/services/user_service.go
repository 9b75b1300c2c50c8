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

// AuthConfig carries the token-signing parameters for user sessions.
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// WalletDefaults are applied to every account created at onboarding.
type WalletDefaults struct {
	CurrencyCode string
	DailyLimit   decimal.Decimal
	MonthlyLimit decimal.Decimal
}

type userService struct {
	BaseService
	userRepo    portsrepo.UserRepository
	accountRepo portsrepo.AccountRepository
	pinSvc      portssvc.PinSvcFacade
	authCfg     AuthConfig
	defaults    WalletDefaults
}

// NewUserService creates the user service.
func NewUserService(
	userRepo portsrepo.UserRepository,
	accountRepo portsrepo.AccountRepository,
	pinSvc portssvc.PinSvcFacade,
	authCfg AuthConfig,
	defaults WalletDefaults,
) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		pinSvc:      pinSvc,
		authCfg:     authCfg,
		defaults:    defaults,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register onboards a user in three steps: the user record, a zero-balance
// wallet account in the default currency, and the PIN credential. The phone
// number is the login identity; a duplicate aborts before anything is written.
func (s *userService) Register(ctx context.Context, params portssvc.RegisterParams) (*portssvc.AuthResult, error) {
	phone, err := utils.NormalizePhoneNumber(params.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := utils.ValidatePinFormat(params.Pin); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if params.Pin != params.ConfirmPin {
		return nil, fmt.Errorf("%w: pin confirmation does not match", apperrors.ErrValidation)
	}

	_, err = s.userRepo.FindUserByPhone(ctx, phone)
	if err == nil {
		return nil, fmt.Errorf("%w: phone number already registered", apperrors.ErrDuplicate)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user", slog.String("phone", phone))
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID:      uuid.NewString(),
		PhoneNumber: phone,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		IsVerified:  false,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "registration",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: phone number already registered", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("phone", phone))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	accountNumber, err := utils.GenerateAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		UserID:        user.UserID,
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
		CurrencyCode:  s.defaults.CurrencyCode,
		Status:        domain.AccountActive,
		DailyLimit:    s.defaults.DailyLimit,
		MonthlyLimit:  s.defaults.MonthlyLimit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     user.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: user.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	if err := s.pinSvc.SetupPin(ctx, user.UserID, params.Pin, params.ConfirmPin); err != nil {
		s.LogError(ctx, err, "Failed to set up pin during registration", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return s.issueSession(ctx, user)
}

// Login authenticates by phone and PIN. Unknown phone and wrong PIN both come
// back as ErrInvalidPin so a caller cannot probe which numbers are registered.
func (s *userService) Login(ctx context.Context, phoneNumber, pin string) (*portssvc.AuthResult, error) {
	phone, err := utils.NormalizePhoneNumber(phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidPin
		}
		s.LogError(ctx, err, "Failed to find user by phone")
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrForbidden
	}

	ok, err := s.pinSvc.VerifyPin(ctx, user.UserID, pin)
	if err != nil {
		if errors.Is(err, apperrors.ErrPinNotSetup) {
			return nil, apperrors.ErrInvalidPin
		}
		return nil, err
	}
	if !ok {
		s.LogInfo(ctx, "Login rejected on pin mismatch", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrInvalidPin
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return s.issueSession(ctx, *user)
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// ValidateRecipient confirms a phone number can receive transfers before the
// sender commits. Any failure mode collapses to ErrRecipientNotFound.
func (s *userService) ValidateRecipient(ctx context.Context, phoneNumber string) (*portssvc.RecipientInfo, error) {
	phone, err := utils.NormalizePhoneNumber(phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrRecipientNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrRecipientNotFound
	}

	account, err := s.accountRepo.FindAccountByUserID(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrRecipientNotFound
		}
		return nil, err
	}
	if !account.IsActive() {
		return nil, apperrors.ErrRecipientNotFound
	}

	return &portssvc.RecipientInfo{
		Name:        user.DisplayName(),
		PhoneNumber: user.PhoneNumber,
	}, nil
}

func (s *userService) issueSession(ctx context.Context, user domain.User) (*portssvc.AuthResult, error) {
	token, err := utils.GenerateJWT(user.UserID, s.authCfg.JWTSecret, s.authCfg.JWTExpiry, s.authCfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return &portssvc.AuthResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.authCfg.JWTExpiry),
		User:      user,
	}, nil
}
