// Package rules holds the reusable field validators the concrete wizard
// definitions are assembled from. Each helper returns a wizard.Validator over
// a single rule; All merges them into a per-step validator.
package rules

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/festivo/festivo-backend/internal/wizard"
)

// All runs every validator and merges their field errors. Later validators do
// not overwrite an earlier error for the same field.
func All(validators ...wizard.Validator) wizard.Validator {
	return func(form wizard.Form) wizard.FieldErrors {
		merged := wizard.FieldErrors{}
		for _, validate := range validators {
			for field, msg := range validate(form) {
				if _, exists := merged[field]; !exists {
					merged[field] = msg
				}
			}
		}
		return merged
	}
}

// NonEmpty requires a non-blank string field.
func NonEmpty(field, message string) wizard.Validator {
	return func(form wizard.Form) wizard.FieldErrors {
		if strings.TrimSpace(stringValue(form.Record[field])) == "" {
			return wizard.FieldErrors{field: message}
		}
		return nil
	}
}

// MinLen requires a trimmed string of at least min runes.
func MinLen(field string, min int, message string) wizard.Validator {
	return func(form wizard.Form) wizard.FieldErrors {
		if len([]rune(strings.TrimSpace(stringValue(form.Record[field])))) < min {
			return wizard.FieldErrors{field: message}
		}
		return nil
	}
}

// Positive requires a numeric field strictly greater than zero.
func Positive(field, message string) wizard.Validator {
	return func(form wizard.Form) wizard.FieldErrors {
		value, ok := numericValue(form.Record[field])
		if !ok || value <= 0 {
			return wizard.FieldErrors{field: message}
		}
		return nil
	}
}

// NonEmptyList requires a list field with at least one entry.
func NonEmptyList(field, message string) wizard.Validator {
	return func(form wizard.Form) wizard.FieldErrors {
		switch v := form.Record[field].(type) {
		case []string:
			if len(v) > 0 {
				return nil
			}
		case []any:
			if len(v) > 0 {
				return nil
			}
		}
		return wizard.FieldErrors{field: message}
	}
}

// MinAttachments requires at least min registered attachments. The error is
// keyed under "attachments" since the handles live outside the record.
func MinAttachments(min int, message string) wizard.Validator {
	return func(form wizard.Form) wizard.FieldErrors {
		if len(form.Attachments) < min {
			return wizard.FieldErrors{"attachments": message}
		}
		return nil
	}
}

// OrderedPair requires minField <= maxField when both are present and numeric.
// The error lands on maxField, where the user can fix the range.
func OrderedPair(minField, maxField, message string) wizard.Validator {
	return func(form wizard.Form) wizard.FieldErrors {
		minVal, minOK := numericValue(form.Record[minField])
		maxVal, maxOK := numericValue(form.Record[maxField])
		if !minOK || !maxOK {
			return nil
		}
		if minVal > maxVal {
			return wizard.FieldErrors{maxField: message}
		}
		return nil
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return ""
	}
}

// numericValue tolerates the shapes JSON decoding and Go callers produce.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
