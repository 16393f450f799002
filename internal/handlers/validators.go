package handlers

import (
	"sync"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by the request DTOs to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("currency", validateCurrency)
		}
	})
}

// validateCurrency accepts any supported ISO code, case-insensitively.
func validateCurrency(fl validator.FieldLevel) bool {
	_, err := domain.ParseCurrencyCode(fl.Field().String())
	return err == nil
}
