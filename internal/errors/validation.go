package errors

import (
	"fmt"
	"strings"
)

// MetaValidationErrors is the meta key holding field problems as
// map[string][]string
const MetaValidationErrors = "validation_errors"

// ValidationBuilder collects field problems and turns them into a single
// InvalidArgument error. Fields are reported in the order first seen.
type ValidationBuilder struct {
	fields map[string][]string
	order  []string
}

// NewValidationBuilder creates an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

// Field records a problem with a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	if _, seen := vb.fields[field]; !seen {
		vb.order = append(vb.order, field)
	}
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

// Fieldf records a formatted problem with a field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...interface{}) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

// RequiredField records a missing field
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField records a field with an unacceptable value
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns nil when nothing was recorded
func (vb *ValidationBuilder) Build() error {
	if len(vb.order) == 0 {
		return nil
	}

	parts := make([]string, len(vb.order))
	for i, field := range vb.order {
		parts[i] = field + ": " + strings.Join(vb.fields[field], ", ")
	}

	return InvalidArgument("validation failed: "+strings.Join(parts, "; ")).
		WithMeta(MetaValidationErrors, vb.fields)
}

// ValidateRequired records an empty or blank string
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange records an int outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidatePositive records an int that is zero or less
func ValidatePositive(field string, value int, vb *ValidationBuilder) {
	if value <= 0 {
		vb.Field(field, "must be positive")
	}
}

// ValidateNonNegative records a negative number
func ValidateNonNegative(field string, value float64, vb *ValidationBuilder) {
	if value < 0 {
		vb.Field(field, "must not be negative")
	}
}

// ValidateFraction records a number outside [0, 1]
func ValidateFraction(field string, value float64, vb *ValidationBuilder) {
	if value < 0 || value > 1 {
		vb.Field(field, "must be between 0 and 1")
	}
}
