// Package condition provides the core condition-graph domain entities
// following Clean Architecture principles with zero external dependencies.
package condition

// Field is an enumerated record attribute a condition inspects.
type Field string

const (
	// FieldStatus inspects the record status
	FieldStatus Field = "status"
	// FieldAssignee inspects the assigned team member
	FieldAssignee Field = "assignee"
	// FieldClientType inspects the client classification
	FieldClientType Field = "client_type"
	// FieldPriority inspects the record priority
	FieldPriority Field = "priority"
	// FieldTags inspects the record tag list
	FieldTags Field = "tags"
	// FieldServices inspects the subscribed service list
	FieldServices Field = "services"
)

// FieldCategory groups fields by value shape; operator legality is keyed on it.
type FieldCategory string

const (
	// CategoryScalar fields hold a single value
	CategoryScalar FieldCategory = "scalar"
	// CategoryTag fields hold a list of values
	CategoryTag FieldCategory = "tag"
)

// Operator is an enumerated comparison applied to a field.
type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "not_equals"
	OperatorContains    Operator = "contains"
	OperatorContainsAny Operator = "contains_any"
	OperatorContainsAll Operator = "contains_all"
	OperatorIsEmpty     Operator = "is_empty"
)

// Defaults for freshly added nodes.
const (
	DefaultField    = FieldStatus
	DefaultOperator = OperatorEquals
)

// fieldCategories assigns every known field to exactly one category.
var fieldCategories = map[Field]FieldCategory{
	FieldStatus:     CategoryScalar,
	FieldAssignee:   CategoryScalar,
	FieldClientType: CategoryScalar,
	FieldPriority:   CategoryScalar,
	FieldTags:       CategoryTag,
	FieldServices:   CategoryTag,
}

// categoryOperators is the operator legality table. New categories add rows
// here, not branches in calling code.
var categoryOperators = map[FieldCategory][]Operator{
	CategoryScalar: {OperatorEquals, OperatorNotEquals, OperatorContains, OperatorIsEmpty},
	CategoryTag:    {OperatorContainsAny, OperatorContainsAll, OperatorIsEmpty},
}

// CategoryOf returns the category of a field.
func CategoryOf(f Field) (FieldCategory, bool) {
	c, ok := fieldCategories[f]
	return c, ok
}

// KnownField reports whether f is part of the catalog.
func KnownField(f Field) bool {
	_, ok := fieldCategories[f]
	return ok
}

// OperatorsFor returns the operators legal for a field, nil for unknown fields.
func OperatorsFor(f Field) []Operator {
	c, ok := fieldCategories[f]
	if !ok {
		return nil
	}
	ops := categoryOperators[c]
	out := make([]Operator, len(ops))
	copy(out, ops)
	return out
}

// KnownOperator reports whether op is legal for at least one category.
func KnownOperator(op Operator) bool {
	for _, ops := range categoryOperators {
		for _, o := range ops {
			if o == op {
				return true
			}
		}
	}
	return false
}

// IsLegal reports whether op is legal for field f.
func IsLegal(f Field, op Operator) bool {
	c, ok := fieldCategories[f]
	if !ok {
		return false
	}
	for _, o := range categoryOperators[c] {
		if o == op {
			return true
		}
	}
	return false
}
