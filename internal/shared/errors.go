package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates the write would duplicate an existing record.
	ErrConflict = errors.New("conflict")
	// ErrReferenceNotFound indicates a foreign key target does not exist.
	ErrReferenceNotFound = errors.New("referenced record not found")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidUpdate indicates an update payload without any recognised field.
	ErrInvalidUpdate = errors.New("no valid fields provided for update")
	// ErrStorage indicates the database itself failed.
	ErrStorage = errors.New("storage error")
)

// Error kinds reported to API clients.
const (
	KindValidationFailed  = "ValidationFailed"
	KindConflict          = "Conflict"
	KindReferenceNotFound = "ReferenceNotFound"
	KindNotFound          = "NotFound"
	KindInvalidUpdate     = "InvalidUpdate"
	KindStorageError      = "StorageError"
)

// FieldError reports a validation failure on a single input field.
type FieldError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap makes FieldError match ErrValidation.
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// NewFieldError builds a FieldError.
func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// StorageError wraps an unanticipated database failure. The cause stays reachable
// through errors.Is and errors.As.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// KindOf classifies err into one of the Kind* constants.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidationFailed
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrReferenceNotFound):
		return KindReferenceNotFound
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidUpdate):
		return KindInvalidUpdate
	default:
		return KindStorageError
	}
}

// UserSafeMessage returns a message that can be shown to API clients.
// Storage failures are reduced to a generic text.
func UserSafeMessage(err error) string {
	if err == nil {
		return ""
	}
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Error()
	}
	if KindOf(err) == KindStorageError {
		return "the request could not be completed"
	}
	return err.Error()
}
