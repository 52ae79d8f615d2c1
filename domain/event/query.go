package event

import (
	"fmt"

	"github.com/fazlanhoxton/hxt-events/domain/validation"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page addresses one page of an upstream listing. Numbers start at 1.
type Page struct {
	Number int
	Size   int
}

func (p Page) Next() Page {
	return Page{Number: p.Number + 1, Size: p.Size}
}

func (p Page) Validate() error {
	validationErr := validation.NewValidationError()

	if p.Number < 1 {
		validationErr.Add(validation.ErrorDetail{
			Field:   "pageNumber",
			Code:    validation.ErrCodeInvalidValue,
			Message: "pageNumber must be at least 1",
		})
	}

	if p.Size < 1 || p.Size > MaxPageSize {
		validationErr.Add(validation.ErrorDetail{
			Field:   "pageSize",
			Code:    validation.ErrCodeInvalidRange,
			Message: fmt.Sprintf("pageSize must be between 1 and %d", MaxPageSize),
		})
	}

	return validationErr.Err()
}
