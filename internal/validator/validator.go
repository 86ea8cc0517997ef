// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"cashira/internal/currency"
	"cashira/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_kind", validateTransactionKind)
		_ = v.RegisterValidation("category", validateCategory)
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
		_ = v.RegisterValidation("theme", validateTheme)
	}
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	return models.TransactionKind(fl.Field().String()).Valid()
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.ValidCategory(fl.Field().String())
}

// validateCurrencyCode accepts only codes from the supported display
// currency table, not the full ISO 4217 set.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currency.IsSupported(fl.Field().String())
}

func validateTheme(fl validator.FieldLevel) bool {
	return models.Theme(fl.Field().String()).Valid()
}
