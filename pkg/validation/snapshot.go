package validation

import (
	"fmt"

	"github.com/rulegraph/rulegraph/internal/core/condition"
	"github.com/rulegraph/rulegraph/internal/core/trigger"
)

// ValidateSnapshot performs strict structural validation: every record must
// carry an id, fields and operators must come from the catalog, the operator
// must be legal for the field's category, ids must be unique within their
// space, and every edge endpoint must resolve.
func ValidateSnapshot(s trigger.Snapshot) error {
	var errs ValidationErrors

	nodeIDs := make(map[string]struct{}, len(s.Conditions))
	for i, c := range s.Conditions {
		prefix := fmt.Sprintf("conditions[%d]", i)
		errs = checkVar(errs, prefix+".id", c.ID, "required")
		errs = checkVar(errs, prefix+".field", c.Field, "required,condition_field")
		errs = checkVar(errs, prefix+".operator", c.Operator, "required,condition_operator")

		f := condition.Field(c.Field)
		op := condition.Operator(c.Operator)
		if condition.KnownField(f) && condition.KnownOperator(op) && !condition.IsLegal(f, op) {
			errs = append(errs, ValidationError{
				Field:   prefix + ".operator",
				Value:   c.Operator,
				Message: fmt.Sprintf("operator not allowed for field %q", c.Field),
			})
		}

		if c.ID != "" {
			if _, dup := nodeIDs[c.ID]; dup {
				errs = append(errs, ValidationError{
					Field:   prefix + ".id",
					Value:   c.ID,
					Message: "duplicate condition id",
				})
			}
			nodeIDs[c.ID] = struct{}{}
		}
	}

	edgeIDs := make(map[string]struct{}, len(s.Edges))
	for i, e := range s.Edges {
		prefix := fmt.Sprintf("edges[%d]", i)
		errs = checkVar(errs, prefix+".id", e.ID, "required")
		errs = checkVar(errs, prefix+".source", e.Source, "required")
		errs = checkVar(errs, prefix+".target", e.Target, "required")

		if e.Source != "" {
			if _, ok := nodeIDs[e.Source]; !ok {
				errs = append(errs, ValidationError{
					Field:   prefix + ".source",
					Value:   e.Source,
					Message: "source references a missing condition",
				})
			}
		}
		if e.Target != "" {
			if _, ok := nodeIDs[e.Target]; !ok {
				errs = append(errs, ValidationError{
					Field:   prefix + ".target",
					Value:   e.Target,
					Message: "target references a missing condition",
				})
			}
		}

		if e.ID != "" {
			if _, dup := edgeIDs[e.ID]; dup {
				errs = append(errs, ValidationError{
					Field:   prefix + ".id",
					Value:   e.ID,
					Message: "duplicate edge id",
				})
			}
			edgeIDs[e.ID] = struct{}{}
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidateTrigger validates the full persisted record.
func ValidateTrigger(t *trigger.Trigger) error {
	if t == nil {
		return trigger.ErrNilTrigger
	}
	if err := t.Validate(); err != nil {
		return err
	}
	return ValidateSnapshot(t.Snapshot)
}
