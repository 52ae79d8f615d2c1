package event

import (
	"strconv"
	"time"

	"github.com/fazlanhoxton/hxt-events/domain/validation"
)

const (
	MinNameLength = 2
	MaxNameLength = 200
	MaxScIDLength = 100
)

type CreateEventCommand struct {
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	VenueID  int64     `json:"venue_id"`
	ScID     string    `json:"sc_id"`
}

// TicketingPayload is the body sent to the ticketing system. sc_id only
// lives in the content system.
type TicketingPayload struct {
	Name     string `json:"name"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	VenueID  int64  `json:"venue_id"`
}

func (cmd *CreateEventCommand) ToTicketingPayload() TicketingPayload {
	return TicketingPayload{
		Name:     cmd.Name,
		StartsAt: cmd.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:   cmd.EndsAt.UTC().Format(time.RFC3339),
		VenueID:  cmd.VenueID,
	}
}

// ToMirror maps a freshly created ticketing record onto the content-system
// shape.
func (cmd *CreateEventCommand) ToMirror(created *Record) *Mirror {
	return &Mirror{
		EventName:           created.Name,
		EventIDGuestManager: strconv.FormatInt(created.ID, 10),
		DefaultScID:         cmd.ScID,
	}
}

type ValidateFunc func(cmd *CreateEventCommand) *validation.ErrorDetail

var ValidateName ValidateFunc = func(cmd *CreateEventCommand) *validation.ErrorDetail {
	return validation.Length("name", cmd.Name, MinNameLength, MaxNameLength)
}

var ValidateStartsAt ValidateFunc = func(cmd *CreateEventCommand) *validation.ErrorDetail {
	if cmd.StartsAt.IsZero() {
		d := validation.Required("starts_at")
		return &d
	}
	return nil
}

var ValidateEndsAt ValidateFunc = func(cmd *CreateEventCommand) *validation.ErrorDetail {
	if cmd.EndsAt.IsZero() {
		d := validation.Required("ends_at")
		return &d
	}
	if !cmd.StartsAt.IsZero() && !cmd.EndsAt.After(cmd.StartsAt) {
		return &validation.ErrorDetail{
			Field:   "ends_at",
			Code:    validation.ErrCodeInvalidRange,
			Message: "ends_at must be later than starts_at",
		}
	}
	return nil
}

var ValidateVenueID ValidateFunc = func(cmd *CreateEventCommand) *validation.ErrorDetail {
	if cmd.VenueID <= 0 {
		return &validation.ErrorDetail{
			Field:   "venue_id",
			Code:    validation.ErrCodeInvalidValue,
			Message: "venue_id must reference an existing venue",
		}
	}
	return nil
}

var ValidateScID ValidateFunc = func(cmd *CreateEventCommand) *validation.ErrorDetail {
	return validation.Length("sc_id", cmd.ScID, 1, MaxScIDLength)
}

func (cmd *CreateEventCommand) Validate(functions ...ValidateFunc) error {
	validationErr := validation.NewValidationError()

	for _, fn := range functions {
		if err := fn(cmd); err != nil {
			validationErr.Add(*err)
		}
	}

	return validationErr.Err()
}

func (cmd *CreateEventCommand) ValidateAll() error {
	return cmd.Validate(
		ValidateName,
		ValidateStartsAt,
		ValidateEndsAt,
		ValidateVenueID,
		ValidateScID,
	)
}
