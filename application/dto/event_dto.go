package dto

import (
	"github.com/fazlanhoxton/hxt-events/domain/event"
	"github.com/fazlanhoxton/hxt-events/domain/validation"
)

// CreatedEventResponse is the enriched ticketing event plus the id of its
// content-system mirror.
type CreatedEventResponse struct {
	*event.Event
	ContentID string `json:"content_id"`
}

type DashboardSummary struct {
	TotalEvents    int `json:"total_events"`
	UpcomingEvents int `json:"upcoming_events"`
	TotalAttendees int `json:"total_attendees"`
}

type ListMeta struct {
	Total      int `json:"total"`
	PageNumber int `json:"page_number,omitempty"`
	PageSize   int `json:"page_size,omitempty"`
}

type EventListResponse struct {
	Data []*event.Event `json:"data"`
	Meta ListMeta       `json:"meta"`
}

type MirrorListResponse struct {
	Data []event.MirrorView `json:"data"`
	Meta ListMeta           `json:"meta"`
}

type ErrorResponse struct {
	Error  string                   `json:"error"`
	Errors []validation.ErrorDetail `json:"errors,omitempty"`
}
