package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
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

	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("timeunit", validateTimeUnit)

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
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "currency":
			errs[field] = "Unknown currency"
		case "timeunit":
			errs[field] = "Invalid time unit"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidCurrencies defines the currencies accepted on the wire
var ValidCurrencies = map[string]bool{
	"CCC": true,
	"CS":  true,
	"TON": true,
}

func validateCurrency(fl validator.FieldLevel) bool {
	c := fl.Field().String()
	if c == "" {
		return true
	}
	return ValidCurrencies[strings.ToUpper(c)]
}

// ValidTimeUnits defines the plan duration units accepted on the wire
var ValidTimeUnits = map[string]bool{
	"minutes": true,
	"days":    true,
}

func validateTimeUnit(fl validator.FieldLevel) bool {
	u := fl.Field().String()
	if u == "" {
		return true
	}
	return ValidTimeUnits[strings.ToLower(u)]
}
