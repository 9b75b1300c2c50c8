package pgsql

import (
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	"github.com/vsend/vsend_wallet_backend/internal/models"
)

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		PhoneNumber: m.PhoneNumber,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		IsVerified:  m.IsVerified,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		UserID:        m.UserID,
		AccountNumber: m.AccountNumber,
		Balance:       m.Balance,
		CurrencyCode:  m.CurrencyCode,
		Status:        domain.AccountStatus(m.Status),
		DailyLimit:    m.DailyLimit,
		MonthlyLimit:  m.MonthlyLimit,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		AccountID:         m.AccountID,
		Type:              domain.TransactionType(m.Type),
		Amount:            m.Amount,
		CurrencyCode:      m.CurrencyCode,
		Description:       m.Description,
		Reference:         m.Reference,
		Status:            domain.TransactionStatus(m.Status),
		CounterpartyPhone: m.CounterpartyPhone,
		CreatedAt:         m.CreatedAt,
		CompletedAt:       m.CompletedAt,
	}
}

func toDomainPinCredential(m models.PinCredential) domain.PinCredential {
	return domain.PinCredential{
		CredentialID: m.CredentialID,
		UserID:       m.UserID,
		HashedPin:    m.HashedPin,
		Salt:         m.Salt,
		IsActive:     m.IsActive,
		LastUsedAt:   m.LastUsedAt,
		CreatedAt:    m.CreatedAt,
	}
}

func toDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:        m.ReceiptID,
		TransactionID:    m.TransactionID,
		ReceiptNumber:    m.ReceiptNumber,
		Type:             domain.TransactionType(m.Type),
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		SenderName:       m.SenderName,
		SenderPhone:      m.SenderPhone,
		RecipientName:    m.RecipientName,
		RecipientPhone:   m.RecipientPhone,
		Description:      m.Description,
		Status:           domain.ReceiptStatus(m.Status),
		PaymentReference: m.PaymentReference,
		Fee:              m.Fee,
		BalanceAfter:     m.BalanceAfter,
		CreatedAt:        m.CreatedAt,
	}
}
