package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portsrepo "github.com/vsend/vsend_wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/utils"
)

// pinService guards every money movement. It never returns the stored hash or
// salt to callers; verification happens entirely inside this service.
type pinService struct {
	BaseService
	pinRepo portsrepo.PinRepository
}

// NewPinService creates the PIN service.
func NewPinService(pinRepo portsrepo.PinRepository) portssvc.PinSvcFacade {
	return &pinService{pinRepo: pinRepo}
}

var _ portssvc.PinSvcFacade = (*pinService)(nil)

func (s *pinService) SetupPin(ctx context.Context, userID, pin, confirmPin string) error {
	if err := utils.ValidatePinFormat(pin); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if pin != confirmPin {
		return fmt.Errorf("%w: pin confirmation does not match", apperrors.ErrValidation)
	}

	hashedPin, salt, err := utils.HashPin(pin)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash pin", slog.String("user_id", userID))
		return fmt.Errorf("failed to hash pin: %w", err)
	}

	cred := domain.PinCredential{
		CredentialID: uuid.NewString(),
		UserID:       userID,
		HashedPin:    hashedPin,
		Salt:         salt,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.pinRepo.SaveCredential(ctx, cred); err != nil {
		s.LogError(ctx, err, "Failed to save pin credential", slog.String("user_id", userID))
		return fmt.Errorf("failed to save pin credential: %w", err)
	}

	s.LogInfo(ctx, "Pin credential created", slog.String("user_id", userID))
	return nil
}

func (s *pinService) VerifyPin(ctx context.Context, userID, pin string) (bool, error) {
	cred, err := s.pinRepo.FindActiveCredentialByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.ErrPinNotSetup
		}
		s.LogError(ctx, err, "Failed to load pin credential", slog.String("user_id", userID))
		return false, err
	}

	if !utils.CheckPinHash(pin, cred.Salt, cred.HashedPin) {
		return false, nil
	}

	// Last-used bookkeeping must not fail the verification
	if err := s.pinRepo.TouchLastUsed(ctx, cred.CredentialID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to update pin last used timestamp", slog.String("credential_id", cred.CredentialID))
	}

	return true, nil
}

func (s *pinService) HasPin(ctx context.Context, userID string) (bool, error) {
	_, err := s.pinRepo.FindActiveCredentialByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *pinService) ChangePin(ctx context.Context, userID, currentPin, newPin, confirmNewPin string) error {
	if err := s.Authorize(ctx, userID, currentPin); err != nil {
		return err
	}
	if err := s.SetupPin(ctx, userID, newPin, confirmNewPin); err != nil {
		return err
	}
	s.LogInfo(ctx, "Pin rotated", slog.String("user_id", userID))
	return nil
}

func (s *pinService) Authorize(ctx context.Context, userID, pin string) error {
	ok, err := s.VerifyPin(ctx, userID, pin)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidPin
	}
	return nil
}
