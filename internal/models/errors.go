package models

import "fmt"

// ValidationError marks a constraint violation detected before any write.
// Callers surface these to the user for correction rather than treating them
// as storage failures.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
