// Package extraction pulls power names out of character definition documents.
package extraction

import "fmt"

// MalformedInputError represents a character document that is not well-formed XML
type MalformedInputError struct {
	Path    string
	Message string
	Cause   error
}

func (e *MalformedInputError) Error() string {
	target := e.Path
	if target == "" {
		target = "document"
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed input %s: %s: %v", target, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed input %s: %s", target, e.Message)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}
