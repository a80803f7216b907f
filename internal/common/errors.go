package common

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound is returned when no order exists for a requested dc_no.
var ErrOrderNotFound = errors.New("order not found")

// ValidationError rejects an order creation because a required field is
// missing. The message is part of the wire contract: "<field> is required".
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// NewValidationError creates a validation error for the given field.
func NewValidationError(field string) error {
	return &ValidationError{Field: field}
}

// RenderError wraps a failure inside the PDF layout engine so callers can
// tell it apart from a missing order.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render document: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a store rejection (duplicate key, connection
// loss). The core treats all store failures as one category.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist order: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
