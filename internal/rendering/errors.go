// Package rendering rewrites stored power fragments and composes them into printable sheets.
package rendering

import "fmt"

// FragmentStructureError represents stored markup that lacks the sentinel element
type FragmentStructureError struct {
	Power   string
	Message string
	Cause   error
}

func (e *FragmentStructureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fragment structure error for %q: %s: %v", e.Power, e.Message, e.Cause)
	}
	return fmt.Sprintf("fragment structure error for %q: %s", e.Power, e.Message)
}

func (e *FragmentStructureError) Unwrap() error {
	return e.Cause
}

// SerializationError represents a rewritten fragment that could not be rendered back to markup
type SerializationError struct {
	Power   string
	Message string
	Cause   error
}

func (e *SerializationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("serialization error for %q: %s: %v", e.Power, e.Message, e.Cause)
	}
	return fmt.Sprintf("serialization error for %q: %s", e.Power, e.Message)
}

func (e *SerializationError) Unwrap() error {
	return e.Cause
}
