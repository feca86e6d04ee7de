package candidates

import (
	"errors"
	"fmt"
)

var (
	ErrSlotTaken       = errors.New("time slot already taken")
	ErrSlotNotFound    = errors.New("time slot not found")
	ErrNoPreviousSlots = errors.New("previous day has no time slots")
)

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
