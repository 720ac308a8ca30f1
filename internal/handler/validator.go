package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/farmgate/storefront/internal/domain"
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

	// Register custom validation for cart item kinds
	_ = v.RegisterValidation("itemkind", validateItemKind)

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

// validateItemKind accepts the two cart item discriminators
func validateItemKind(fl validator.FieldLevel) bool {
	switch domain.ItemKind(fl.Field().String()) {
	case domain.ItemKindProduct, domain.ItemKindLot:
		return true
	default:
		return false
	}
}
