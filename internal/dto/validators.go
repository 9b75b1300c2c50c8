package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vsend/vsend_wallet_backend/internal/utils"
)

// RegisterCustomValidations installs the binding rules shared across request
// DTOs. Safe to call more than once.
func RegisterCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// "phone" accepts anything the normalizer accepts, so binding rejects
	// malformed numbers before they reach a service
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, err := utils.NormalizePhoneNumber(fl.Field().String())
		return err == nil
	})
}
