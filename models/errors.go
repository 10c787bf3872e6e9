package models

import (
	"errors"
	"fmt"
)

// ErrMissingDate is returned when a reschedule is attempted without a new
// appointment date.
var ErrMissingDate = errors.New("a new appointment date is required")

// ErrMissingReason is returned when a transition that requires an
// explanation (cancelling an appointment, rejecting a doctor) is attempted
// with an empty or whitespace-only reason.
var ErrMissingReason = errors.New("a non-empty reason is required")

// InvalidTransitionError reports a status change that is not part of the
// allowed transition table. The entity keeps its current status.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition from %s to %s", e.Entity, e.From, e.To)
}

// UnauthorizedTransitionError reports a transition attempted by a role that
// is not allowed to trigger it.
type UnauthorizedTransitionError struct {
	Entity string
	To     string
	Role   Role
}

func (e *UnauthorizedTransitionError) Error() string {
	return fmt.Sprintf("role %s may not move a %s to %s", e.Role, e.Entity, e.To)
}
