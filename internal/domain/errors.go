package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by update-style operations referencing an
// unknown invoice ID. Deletes report absence as false instead.
var ErrNotFound = errors.New("invoice not found")

// ValidationError reports a required field missing from an invoice
// submitted for sending. Field uses the wire name, e.g. "clientName".
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field == "items" {
		return "at least one item is required for pending invoices"
	}
	return fmt.Sprintf("%s is required for pending invoices", e.Field)
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
