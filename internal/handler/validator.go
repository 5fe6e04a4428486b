package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/modstanding/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("severity", validateSeverity)
	_ = v.RegisterValidation("modtype", validateModificationType)
	_ = v.RegisterValidation("offensetier", validateOffenseTier)

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

// FormatValidationError formats validation errors into a user-friendly map
// without leaking internal struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "severity":
			errs[field] = "Invalid severity"
		case "modtype":
			errs[field] = "Unknown modification type"
		case "offensetier":
			errs[field] = "Invalid offense tier"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateSeverity accepts canonical severities and their legacy aliases.
// Empty is allowed; single-severity types carry none.
func validateSeverity(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	_, ok := domain.NormalizeSeverity(raw)
	return ok
}

func validateModificationType(fl validator.FieldLevel) bool {
	_, _, ok := domain.ResolveModificationType(fl.Field().String())
	return ok
}

func validateOffenseTier(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	for _, t := range domain.OffenseTiers {
		if string(t) == raw {
			return true
		}
	}
	return false
}
