// Package validation provides strict snapshot validation with
// go-playground/validator integration. It guards the persistence path:
// stores refuse malformed snapshots loudly, while the editor's hydration
// path deliberately degrades the same input silently (log-and-drop) so a
// corrupt record can never crash an open editor.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rulegraph/rulegraph/internal/core/condition"
)

// Validate is the shared validator instance with catalog-aware rules.
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("condition_field", validateConditionField)
	Validate.RegisterValidation("condition_operator", validateConditionOperator)
}

func validateConditionField(fl validator.FieldLevel) bool {
	return condition.KnownField(condition.Field(fl.Field().String()))
}

func validateConditionOperator(fl validator.FieldLevel) bool {
	return condition.KnownOperator(condition.Operator(fl.Field().String()))
}

// ValidationError describes one failed check.
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every failed check in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// HasErrors reports whether any check failed.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// checkVar runs a validator tag expression against a single value and, on
// failure, appends a ValidationError naming the logical field.
func checkVar(errs ValidationErrors, field string, value interface{}, tag string) ValidationErrors {
	if err := Validate.Var(value, tag); err != nil {
		errs = append(errs, ValidationError{
			Field:   field,
			Value:   value,
			Message: messageFor(tag),
		})
	}
	return errs
}

func messageFor(tag string) string {
	switch {
	case strings.Contains(tag, "condition_field"):
		return "must be a field from the condition catalog"
	case strings.Contains(tag, "condition_operator"):
		return "must be a known comparison operator"
	case strings.Contains(tag, "required"):
		return "field is required"
	default:
		return fmt.Sprintf("validation failed: %s", tag)
	}
}
