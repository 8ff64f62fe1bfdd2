package models

// ValidationError reports a field-level constraint violation. The Field name
// matches the serialized (snake_case) name so callers can surface which field
// failed without translating.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
