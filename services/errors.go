package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound wraps lookups for unknown bookings/rooms/hotels. Bulk
	// operations skip it; single-target operations surface it.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientInventory means zero rooms could be allocated across all
	// requested types. Booking creation aborts with no persisted state.
	ErrInsufficientInventory = errors.New("no available rooms for selected types")

	// ErrExternalService marks a failure in a synchronously awaited external
	// call (payment gateway). Webhook failures are swallowed, not wrapped.
	ErrExternalService = errors.New("external service error")
)

// ValidationError collects field-level problems with an input.
type ValidationError struct {
	fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{fields: map[string]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.fields[field] = message
}

func (e *ValidationError) Fields() map[string]string {
	return e.fields
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for field, msg := range e.fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// ErrOrNil returns the error itself when any field was added, else nil.
func (e *ValidationError) ErrOrNil() error {
	if len(e.fields) > 0 {
		return e
	}
	return nil
}

// IsValidationError unwraps err into a *ValidationError, or nil.
func IsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
