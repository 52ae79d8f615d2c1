package event

import "context"

// TicketingRepository is the event side of the ticketing system.
type TicketingRepository interface {
	Ready() error
	ListEvents(ctx context.Context, page Page) ([]Record, error)
	ListTickets(ctx context.Context, eventID int64, page Page) ([]Ticket, error)
	CreateEvent(ctx context.Context, cmd *CreateEventCommand) (*Record, error)
}

// MirrorRepository is the content system holding public copies of events.
type MirrorRepository interface {
	Ready() error
	CreateEvent(ctx context.Context, m *Mirror) (*Mirror, error)
	ListEvents(ctx context.Context) ([]Mirror, error)
}
