package schema

import (
	"time"
)

// CategoryCode identifies which field set and rule set apply to a purchase.
// The set is fixed; codes outside it fall back to a permissive empty schema.
type CategoryCode string

const (
	CategoryData        CategoryCode = "data"
	CategoryAirtime     CategoryCode = "airtime"
	CategoryCable       CategoryCode = "cable"
	CategoryElectricity CategoryCode = "electricity"
	CategoryEducation   CategoryCode = "education"
	CategoryBetting     CategoryCode = "betting"
	CategoryInternet    CategoryCode = "internet"
	CategoryOthers      CategoryCode = "others"
)

// AllCategories lists every known category code in display order.
var AllCategories = []CategoryCode{
	CategoryAirtime,
	CategoryBetting,
	CategoryCable,
	CategoryData,
	CategoryEducation,
	CategoryElectricity,
	CategoryInternet,
	CategoryOthers,
}

// InputKind drives which control the form renders for a field.
type InputKind int

const (
	InputText InputKind = iota
	InputNumeric
	InputPhone
	InputChoice
	InputProduct
	InputAmount
)

// Field describes one renderable form field for a category. Rule is a
// validator tag; fields with Optional set are only validated when non-empty.
type Field struct {
	Key      string
	Label    string
	Kind     InputKind
	Rule     string
	Choices  []string
	Optional bool
}

type ValidationSeverity int

const (
	ValidationSeverityError ValidationSeverity = iota
	ValidationSeverityWarning
)

type ValidationErrorCode int

const (
	ErrorRequired ValidationErrorCode = iota
	ErrorNotNumeric
	ErrorInvalidPhone
	ErrorInvalidChoice
	ErrorInvalidFormat
)

type ValidationError struct {
	Field    string
	Code     ValidationErrorCode
	Message  string
	Severity ValidationSeverity
}

type ValidationResult struct {
	IsValid     bool
	ValidatedAt time.Time
	Errors      []ValidationError
}

// ErrorFor returns the first error recorded against a field key, if any.
func (r ValidationResult) ErrorFor(key string) (ValidationError, bool) {
	for _, err := range r.Errors {
		if err.Field == key {
			return err, true
		}
	}
	return ValidationError{}, false
}
