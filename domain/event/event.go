package event

import (
	"strings"
	"time"
)

type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusCompleted Status = "Completed"
)

// StatusAt classifies an event by its end time. An event that ends exactly at
// now is still Upcoming.
func StatusAt(endsAt, now time.Time) Status {
	if endsAt.Before(now) {
		return StatusCompleted
	}
	return StatusUpcoming
}

// Record is an event as the ticketing system returns it.
type Record struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	VenueID  int64     `json:"venue_id"`
}

func (r *Record) HasVenue() bool {
	return r.VenueID > 0
}

// Event is a Record enriched for display. Pointer fields are nil when the
// lookup that fills them failed or was not applicable.
type Event struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	VenueID         int64     `json:"venue_id,omitempty"`
	Status          Status    `json:"status"`
	VenueName       *string   `json:"venue"`
	VenueCountry    *string   `json:"county"`
	RegisteredCount *int      `json:"registeredCount"`
	AttendeeCount   *int      `json:"attendeeCount"`
}

func NewEvent(r Record, now time.Time) *Event {
	return &Event{
		ID:       r.ID,
		Name:     r.Name,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		VenueID:  r.VenueID,
		Status:   StatusAt(r.EndsAt, now),
	}
}

func (e *Event) SetVenue(name string) {
	e.VenueName = &name
}

func (e *Event) SetCountry(code string) {
	e.VenueCountry = &code
}

func (e *Event) SetCounts(c TicketCounts) {
	registered, attended := c.Registered, c.Attended
	e.RegisteredCount = &registered
	e.AttendeeCount = &attended
}

type Ticket struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	Status  string `json:"status"`
}

type TicketCounts struct {
	Registered int
	Attended   int
}

// TicketStatusMapping decides which ticket statuses count as registered and
// which as attended. The two sets are independent, so Attended can exceed
// Registered under some mappings.
type TicketStatusMapping struct {
	registered map[string]bool
	attended   map[string]bool
}

func NewTicketStatusMapping(registered, attended []string) TicketStatusMapping {
	return TicketStatusMapping{
		registered: statusSet(registered),
		attended:   statusSet(attended),
	}
}

func statusSet(statuses []string) map[string]bool {
	set := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = true
		}
	}
	return set
}

func (m TicketStatusMapping) Count(tickets []Ticket) TicketCounts {
	var c TicketCounts
	for _, t := range tickets {
		status := strings.ToLower(t.Status)
		if m.registered[status] {
			c.Registered++
		}
		if m.attended[status] {
			c.Attended++
		}
	}
	return c
}
