package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorResponse represents the error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldError describes one request field that failed validation.
type FieldError struct {
	Field string
	Rule  string
}

func (e FieldError) String() string {
	if e.Rule == "required" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s failed %s validation", e.Field, e.Rule)
}

// ValidationError is returned when a request payload does not describe a
// valid record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invalid product: " + strings.Join(parts, ", ")
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
