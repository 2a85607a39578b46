package handlers

import (
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags used by the request DTOs.
// It must run before the first request is bound.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("financialyear", validFinancialYear)
}

// validFinancialYear accepts labels such as 2024-25.
func validFinancialYear(fl validator.FieldLevel) bool {
	_, err := domain.ParseFinancialYear(fl.Field().String())
	return err == nil
}
