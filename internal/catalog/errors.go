package catalog

import (
	"errors"
	"fmt"
)

// LoadErrorCode categorizes catalog load failures.
type LoadErrorCode string

const (
	// ErrCodeRead indicates the catalog file could not be read.
	ErrCodeRead LoadErrorCode = "CATALOG_READ"

	// ErrCodeSchema indicates the document does not match schema.cue.
	ErrCodeSchema LoadErrorCode = "CATALOG_SCHEMA"

	// ErrCodeDecode indicates the document is not valid JSON.
	ErrCodeDecode LoadErrorCode = "CATALOG_DECODE"

	// ErrCodeInvalid indicates a decoded product failed validation.
	ErrCodeInvalid LoadErrorCode = "CATALOG_INVALID"
)

// LoadError is returned when a catalog cannot be built.
type LoadError struct {
	Code    LoadErrorCode
	Message string
	Path    string
	Err     error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s (path=%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsSchemaError returns true if err is a schema mismatch.
// Uses errors.As to handle wrapped errors.
func IsSchemaError(err error) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code == ErrCodeSchema
	}
	return false
}

// IsInvalidProduct returns true if err is a product validation failure.
func IsInvalidProduct(err error) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code == ErrCodeInvalid
	}
	return false
}
