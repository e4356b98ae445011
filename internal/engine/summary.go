package engine

import (
	"adaeze/payTerm/internal/drafts"
	"adaeze/payTerm/internal/schema"
)

// EmptyValuePlaceholder renders in place of an unset field so the summary's
// row count stays stable for a category.
const EmptyValuePlaceholder = "—"

type SummaryRow struct {
	Key   string
	Label string
	Value string
}

// Project filters the full form value set down to exactly the active
// category's relevant keys, in declared order. Keys from other categories
// never leak into the result; empty values render as a placeholder.
func Project(selector *schema.Selector, values drafts.FormValues, code schema.CategoryCode) []SummaryRow {
	fields := selector.FieldsFor(code)
	rows := make([]SummaryRow, 0, len(fields))

	for _, field := range fields {
		value := values[field.Key]
		if value == "" {
			value = EmptyValuePlaceholder
		}
		rows = append(rows, SummaryRow{
			Key:   field.Key,
			Label: field.Label,
			Value: value,
		})
	}

	return rows
}

// ProjectValues returns only the relevant key/value pairs for transmission,
// dropping placeholder handling. This is the map handed to the payment
// client on submit.
func ProjectValues(selector *schema.Selector, values drafts.FormValues, code schema.CategoryCode) map[string]string {
	out := make(map[string]string)
	for _, key := range selector.KeysFor(code) {
		out[key] = values[key]
	}
	return out
}
