package models

import "fmt"

// ValidationError reports a malformed or missing required input field. It is
// raised at construction/decode time, before any store or workflow call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}
