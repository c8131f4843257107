package session

import (
	"errors"
	"fmt"
)

// CommandErrorCode categorizes rejected commands.
type CommandErrorCode string

const (
	// ErrCodeInvalidFilterValue indicates a filter value outside its domain.
	ErrCodeInvalidFilterValue CommandErrorCode = "INVALID_FILTER_VALUE"

	// ErrCodeUnknownProduct indicates an id that is not in the catalog.
	ErrCodeUnknownProduct CommandErrorCode = "UNKNOWN_PRODUCT"
)

// CommandError reports a command rejected at the session boundary. State
// is unchanged when a command returns one.
type CommandError struct {
	// Code identifies the error category.
	Code CommandErrorCode

	// Message is a human-readable description.
	Message string

	// Field names the rejected input, such as "min_rating".
	Field string

	// Value is the rejected input as text.
	Value string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s=%s)", e.Code, e.Message, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidFilter returns true if err is an invalid filter value error.
// Uses errors.As to handle wrapped errors.
func IsInvalidFilter(err error) bool {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeInvalidFilterValue
	}
	return false
}

// IsUnknownProduct returns true if err is an unknown product error.
func IsUnknownProduct(err error) bool {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnknownProduct
	}
	return false
}
