package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for type checking
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrCancelled    = errors.New("cancelled")
)

// NotFoundError indicates a palette or colour doesn't exist.
type NotFoundError struct {
	Resource string // "palette", "color"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func PaletteNotFound(id string) error {
	return &NotFoundError{Resource: "palette", ID: id}
}

func ColorNotFound(paletteID string, index int) error {
	return &NotFoundError{Resource: "color", ID: fmt.Sprintf("%d (in palette %s)", index, paletteID)}
}

// DuplicateColor reports a palette that already holds hex.
func DuplicateColor(paletteID, hex string) error {
	return &ValidationError{Field: "color", Message: fmt.Sprintf("%s is already in palette %s", hex, paletteID)}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCancelled reports whether the user dismissed a prompt.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
