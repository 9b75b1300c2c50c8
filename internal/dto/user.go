package dto

import (
	"time"

	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
)

// RegisterRequest defines the data needed to onboard a new user.
type RegisterRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,phone"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Pin         string `json:"pin" binding:"required,numeric,min=4,max=6"`
	ConfirmPin  string `json:"confirmPin" binding:"required,eqfield=Pin"`
}

// LoginRequest defines the phone-and-PIN login payload.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,phone"`
	Pin         string `json:"pin" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID      string    `json:"userID"`
	PhoneNumber string    `json:"phoneNumber"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	IsVerified  bool      `json:"isVerified"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthResponse carries a session token and the user it belongs to.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ValidateRecipientRequest checks a phone number before a transfer.
type ValidateRecipientRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,phone"`
}

// RecipientResponse is the public view of a transfer recipient.
type RecipientResponse struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		PhoneNumber: user.PhoneNumber,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsVerified:  user.IsVerified,
		CreatedAt:   user.CreatedAt,
	}
}

// ToAuthResponse converts an auth result to AuthResponse DTO
func ToAuthResponse(result *portssvc.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      ToUserResponse(&result.User),
	}
}

// ToRecipientResponse converts recipient info to RecipientResponse DTO
func ToRecipientResponse(info *portssvc.RecipientInfo) RecipientResponse {
	return RecipientResponse{
		Name:        info.Name,
		PhoneNumber: info.PhoneNumber,
	}
}
