package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by repositories, services and the report exporter.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntity   = errors.New("duplicate entity")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// StorageError wraps a driver failure that is not otherwise classified.
type StorageError struct {
	Entity string
	Op     string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: storage error: %v", e.Entity, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err for the given entity and operation.
func NewStorageError(entity, op string, err error) error {
	return &StorageError{Entity: entity, Op: op, Err: err}
}

// ValidationError reports a record rejected before reaching storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NewValidationError rejects field for reason
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func invalid(field, reason string) error {
	return NewValidationError(field, reason)
}

// IsNotFound reports whether err carries ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err carries ErrDuplicateEntity.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateEntity)
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
