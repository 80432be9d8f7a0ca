package pricing

import "fmt"

// ValidationError reports a malformed input entity. It identifies the
// offending entity and field so callers can surface actionable messages.
type ValidationError struct {
	EntityID string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s for entity %q: %s", e.Field, e.EntityID, e.Message)
}

// newValidationError creates a validation error for the given entity and field.
func newValidationError(entityID, field, message string) *ValidationError {
	return &ValidationError{
		EntityID: entityID,
		Field:    field,
		Message:  message,
	}
}

// InvariantViolation reports a failed internal post-condition. It indicates a
// defect in the calculation stages rather than bad caller input, so callers
// should alert instead of retrying.
type InvariantViolation struct {
	Check  string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("pricing invariant violated (%s): %s", e.Check, e.Detail)
}
