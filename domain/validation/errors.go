package validation

import (
	"fmt"
	"strings"
)

const (
	ErrCodeRequired     = "validation.required.error"
	ErrCodeMinLength    = "validation.min-length.error"
	ErrCodeMaxLength    = "validation.max-length.error"
	ErrCodeExactLength  = "validation.exact-length.error"
	ErrCodeInvalidRange = "validation.invalid-range.error"
	ErrCodeInvalidValue = "validation.invalid-value.error"
	ErrCodeInvalidGroup = "validation.invalid-group-by.error"
)

type ErrorDetail struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationError struct {
	Errors []ErrorDetail `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation error"
	}

	messages := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

func (e *ValidationError) Add(detail ErrorDetail) {
	e.Errors = append(e.Errors, detail)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Err returns e when it holds at least one detail and nil otherwise.
func (e *ValidationError) Err() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func NewValidationError() *ValidationError {
	return &ValidationError{
		Errors: make([]ErrorDetail, 0),
	}
}

func Required(field string) ErrorDetail {
	return ErrorDetail{
		Field:   field,
		Code:    ErrCodeRequired,
		Message: fmt.Sprintf("%s is required", field),
	}
}

// Length checks a trimmed string against inclusive bounds. max <= 0 means no
// upper bound.
func Length(field, value string, min, max int) *ErrorDetail {
	n := len(strings.TrimSpace(value))
	if n == 0 && min > 0 {
		d := Required(field)
		return &d
	}
	if n < min {
		return &ErrorDetail{
			Field:   field,
			Code:    ErrCodeMinLength,
			Message: fmt.Sprintf("%s must be at least %d characters", field, min),
		}
	}
	if max > 0 && n > max {
		return &ErrorDetail{
			Field:   field,
			Code:    ErrCodeMaxLength,
			Message: fmt.Sprintf("%s must be at most %d characters", field, max),
		}
	}
	return nil
}
