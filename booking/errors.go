package booking

import (
	"fmt"
	"strings"
)

// ValidationError reports the submission precondition failure: one or more
// required fields are still empty. It is raised before any network call.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// ConstraintError reports phase-two field constraint violations.
type ConstraintError struct {
	Fields []FieldError
}

func (e *ConstraintError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

// StepOrderError reports an attempt to resolve a step before its
// prerequisite was chosen.
type StepOrderError struct {
	Step     string
	Requires string
}

func (e *StepOrderError) Error() string {
	return fmt.Sprintf("%s cannot be chosen before %s", e.Step, e.Requires)
}

// SelectionError reports a choice that is not part of the list loaded for
// the current upstream selection.
type SelectionError struct {
	Field string
	ID    uint
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s %d is not available for the current selection", e.Field, e.ID)
}
