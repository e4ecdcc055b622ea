package task

import (
	"errors"
	"fmt"
)

// Sentinel errors for task operations.
var (
	// ErrValidation is returned when a required field is missing or blank.
	ErrValidation = errors.New("title and description are required")

	// ErrNotFound is returned when no task exists for the given id.
	ErrNotFound = errors.New("task not found")
)

// ValidationError names the field that failed the required check.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s is empty", ErrValidation, e.Field)
}

// Is lets errors.Is match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError carries the id that did not resolve.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %d", ErrNotFound, e.ID)
}

// Is lets errors.Is match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
