package schema

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^0\d{10}$`)

// fieldSets maps each category to its ordered, renderable field set. The
// order here is also the display order used by the summary projection.
var fieldSets = map[CategoryCode][]Field{
	CategoryData: {
		{Key: "provider", Label: "Network", Kind: InputChoice, Rule: "required"},
		{Key: "phone", Label: "Phone Number", Kind: InputPhone, Rule: "required,ngphone"},
		{Key: "dataType", Label: "Data Plan", Kind: InputProduct, Rule: "required"},
	},
	CategoryAirtime: {
		{Key: "provider", Label: "Network", Kind: InputChoice, Rule: "required"},
		{Key: "phone", Label: "Phone Number", Kind: InputPhone, Rule: "required,ngphone"},
		{Key: "amount", Label: "Amount", Kind: InputAmount, Rule: "required,numeric"},
	},
	CategoryCable: {
		{Key: "provider", Label: "Provider", Kind: InputChoice, Rule: "required"},
		{Key: "smartCardNumber", Label: "Smart Card Number", Kind: InputNumeric, Rule: "required"},
		{Key: "package", Label: "Package", Kind: InputProduct, Rule: "required"},
	},
	CategoryElectricity: {
		{Key: "provider", Label: "Disco", Kind: InputChoice, Rule: "required"},
		{Key: "meterType", Label: "Meter Type", Kind: InputChoice, Rule: "required,oneof=prepaid postpaid", Choices: []string{"prepaid", "postpaid"}},
		{Key: "meterNumber", Label: "Meter Number", Kind: InputNumeric, Rule: "required,numeric"},
		{Key: "amount", Label: "Amount", Kind: InputAmount, Rule: "required,numeric"},
	},
	CategoryEducation: {
		{Key: "provider", Label: "Exam Board", Kind: InputChoice, Rule: "required"},
		{Key: "examType", Label: "Exam Type", Kind: InputProduct, Rule: "required"},
		{Key: "quantity", Label: "Quantity", Kind: InputNumeric, Rule: "required,numeric"},
	},
	CategoryBetting: {
		{Key: "platform", Label: "Platform", Kind: InputChoice, Rule: "required"},
		{Key: "userId", Label: "User ID", Kind: InputText, Rule: "required"},
		{Key: "amount", Label: "Amount", Kind: InputAmount, Rule: "required,numeric"},
	},
	CategoryInternet: {
		{Key: "provider", Label: "Provider", Kind: InputChoice, Rule: "required"},
		{Key: "planType", Label: "Plan", Kind: InputProduct, Rule: "required"},
		{Key: "accountNumber", Label: "Account Number", Kind: InputNumeric, Rule: "required"},
	},
	CategoryOthers: {
		{Key: "serviceType", Label: "Service Type", Kind: InputChoice, Rule: "required"},
		{Key: "referenceId", Label: "Reference ID", Kind: InputText, Rule: "required"},
		{Key: "amount", Label: "Amount", Kind: InputAmount, Rule: "required,numeric"},
	},
}

// Selector resolves the field set and validation rules for a category and
// validates form values against exactly the active category's rules.
type Selector struct {
	validate *validator.Validate
}

func NewSelector() (*Selector, error) {
	v := validator.New()

	err := v.RegisterValidation("ngphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register phone rule: %w", err)
	}

	return &Selector{validate: v}, nil
}

// FieldsFor returns the ordered field set for a category. Unknown codes
// return an empty set; that is the deliberate permissive fallback, not an
// error path.
func (s *Selector) FieldsFor(code CategoryCode) []Field {
	fields, ok := fieldSets[code]
	if !ok {
		return nil
	}

	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// KeysFor returns the relevant field keys for a category in display order.
func (s *Selector) KeysFor(code CategoryCode) []string {
	fields := fieldSets[code]
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// IsKnown reports whether a code is in the fixed category enumeration.
func IsKnown(code CategoryCode) bool {
	_, ok := fieldSets[code]
	return ok
}

// Validate runs the active category's rules against the given values. Keys
// present in values but absent from the category's field set are ignored;
// stale entries from other categories must never fail validation here.
func (s *Selector) Validate(code CategoryCode, values map[string]string) ValidationResult {
	result := ValidationResult{IsValid: true}

	for _, field := range fieldSets[code] {
		value := values[field.Key]
		if field.Optional && value == "" {
			continue
		}

		if err := s.validate.Var(value, field.Rule); err != nil {
			result.Errors = append(result.Errors, s.toValidationError(field, err))
			result.IsValid = false
		}
	}

	return result
}

func (s *Selector) toValidationError(field Field, err error) ValidationError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return ValidationError{
			Field:    field.Key,
			Code:     ErrorInvalidFormat,
			Message:  fmt.Sprintf("%s is invalid", field.Label),
			Severity: ValidationSeverityError,
		}
	}

	var code ValidationErrorCode
	var message string

	switch verrs[0].Tag() {
	case "required":
		code = ErrorRequired
		message = fmt.Sprintf("%s is required", field.Label)
	case "numeric":
		code = ErrorNotNumeric
		message = fmt.Sprintf("%s must be a number", field.Label)
	case "ngphone":
		code = ErrorInvalidPhone
		message = "Enter a valid 11-digit phone number starting with 0"
	case "oneof":
		code = ErrorInvalidChoice
		message = fmt.Sprintf("%s must be one of the listed options", field.Label)
	default:
		code = ErrorInvalidFormat
		message = fmt.Sprintf("%s is invalid", field.Label)
	}

	return ValidationError{
		Field:    field.Key,
		Code:     code,
		Message:  message,
		Severity: ValidationSeverityError,
	}
}
