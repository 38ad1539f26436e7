package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/anvilworks/forgeledger/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations for domain enums
	_ = v.RegisterValidation("priority", validatePriority)
	_ = v.RegisterValidation("contractstatus", validateContractStatus)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func validatePriority(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	// Empty falls back to the default priority
	if p == "" {
		return true
	}
	return domain.Priority(p).Valid()
}

func validateContractStatus(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return domain.ContractStatus(s).Valid()
}
