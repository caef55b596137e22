package db

import "fmt"

// RepositoryError represents a store that cannot be opened or queried.
// It is fatal for the whole run.
type RepositoryError struct {
	Message string
	Cause   error
}

func (e *RepositoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("repository error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("repository error: %s", e.Message)
}

func (e *RepositoryError) Unwrap() error {
	return e.Cause
}
