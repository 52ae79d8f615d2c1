package venue

import (
	"context"
	"fmt"
	"strings"

	"github.com/fazlanhoxton/hxt-events/domain/validation"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100

	MinNameLength        = 2
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	CountryCodeLength    = 2
)

type Address struct {
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
}

type TZInfo struct {
	FormattedOffset string `json:"formatted_offset,omitempty"`
}

type Venue struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	TimeZone    string   `json:"time_zone,omitempty"`
	Address     *Address `json:"address,omitempty"`
	TZInfo      *TZInfo  `json:"tzinfo,omitempty"`
}

// CountryCode reports false when the ticketing system did not include the address.
func (v *Venue) CountryCode() (string, bool) {
	if v.Address == nil {
		return "", false
	}
	return v.Address.CountryCode, true
}

// Page mirrors the ticketing list envelope; meta is passed through untouched.
type Page struct {
	Data []Venue        `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

type ListQuery struct {
	PageNumber int
	PageSize   int
	Search     string
}

// Normalize fills the defaults the dashboard relies on.
func (q *ListQuery) Normalize() {
	if q.PageNumber == 0 {
		q.PageNumber = DefaultPageNumber
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
}

func (q *ListQuery) Validate() error {
	validationErr := validation.NewValidationError()

	if q.PageNumber < 1 {
		validationErr.Add(validation.ErrorDetail{
			Field:   "pageNumber",
			Code:    validation.ErrCodeInvalidValue,
			Message: "pageNumber must be at least 1",
		})
	}

	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		validationErr.Add(validation.ErrorDetail{
			Field:   "pageSize",
			Code:    validation.ErrCodeInvalidRange,
			Message: fmt.Sprintf("pageSize must be between 1 and %d", MaxPageSize),
		})
	}

	return validationErr.Err()
}

type CreateVenueCommand struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	TimeZone    string  `json:"time_zone"`
	Address     Address `json:"address"`
}

func (cmd *CreateVenueCommand) Validate() error {
	validationErr := validation.NewValidationError()

	if d := validation.Length("name", cmd.Name, MinNameLength, MaxNameLength); d != nil {
		validationErr.Add(*d)
	}
	if d := validation.Length("description", cmd.Description, 0, MaxDescriptionLength); d != nil {
		validationErr.Add(*d)
	}
	if strings.TrimSpace(cmd.TimeZone) == "" {
		validationErr.Add(validation.Required("time_zone"))
	}
	if strings.TrimSpace(cmd.Address.City) == "" {
		validationErr.Add(validation.Required("address.city"))
	}
	if len(strings.TrimSpace(cmd.Address.CountryCode)) != CountryCodeLength {
		validationErr.Add(validation.ErrorDetail{
			Field:   "address.country_code",
			Code:    validation.ErrCodeExactLength,
			Message: "address.country_code must be a 2-letter code",
		})
	}

	return validationErr.Err()
}

type Repository interface {
	Ready() error
	GetVenue(ctx context.Context, id int64) (*Venue, error)
	ListVenues(ctx context.Context, query ListQuery) (*Page, error)
	CreateVenue(ctx context.Context, cmd *CreateVenueCommand) (*Venue, error)
}
