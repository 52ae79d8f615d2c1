package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/fazlanhoxton/hxt-events/application/dto"
	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/domain/event"
	"github.com/fazlanhoxton/hxt-events/domain/venue"
	"github.com/fazlanhoxton/hxt-events/infrastructure/clock"
	"github.com/fazlanhoxton/hxt-events/infrastructure/messaging/kafka"
	"github.com/fazlanhoxton/hxt-events/infrastructure/metrics"
	"golang.org/x/sync/errgroup"
)

type EventService interface {
	ListEvents(ctx context.Context) ([]*event.Event, error)
	ListEventsPage(ctx context.Context, page event.Page) ([]*event.Event, error)
	CreateEvent(ctx context.Context, cmd *event.CreateEventCommand) (*dto.CreatedEventResponse, error)
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
	ListMirroredEvents(ctx context.Context) ([]event.MirrorView, error)
}

type EventServiceOptions struct {
	PageSize    int
	Concurrency int
	Statuses    event.TicketStatusMapping
}

type eventService struct {
	ticketing   event.TicketingRepository
	mirrors     event.MirrorRepository
	venues      venue.Repository
	publisher   kafka.ActivityPublisher
	clock       clock.Clock
	statuses    event.TicketStatusMapping
	pageSize    int
	concurrency int
}

func NewEventService(
	ticketing event.TicketingRepository,
	mirrors event.MirrorRepository,
	venues venue.Repository,
	publisher kafka.ActivityPublisher,
	clk clock.Clock,
	opts EventServiceOptions,
) EventService {
	if opts.PageSize < 1 {
		opts.PageSize = event.DefaultPageSize
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	return &eventService{
		ticketing:   ticketing,
		mirrors:     mirrors,
		venues:      venues,
		publisher:   publisher,
		clock:       clk,
		statuses:    opts.Statuses,
		pageSize:    opts.PageSize,
		concurrency: opts.Concurrency,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*event.Event, error) {
	if err := s.ticketing.Ready(); err != nil {
		return nil, err
	}

	records, err := collectPages(ctx, s.pageSize, s.ticketing.ListEvents)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	return s.enrich(ctx, records)
}

func (s *eventService) ListEventsPage(ctx context.Context, page event.Page) ([]*event.Event, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := s.ticketing.Ready(); err != nil {
		return nil, err
	}

	records, err := s.ticketing.ListEvents(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	return s.enrich(ctx, records)
}

// enrich resolves venue and ticket counts for every record with at most
// s.concurrency records in flight. Output order matches input order.
func (s *eventService) enrich(ctx context.Context, records []event.Record) ([]*event.Event, error) {
	now := s.clock.Now()
	out := make([]*event.Event, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, r := range records {
		g.Go(func() error {
			e := event.NewEvent(r, now)

			var lookups errgroup.Group
			lookups.Go(func() error {
				s.attachVenue(gctx, e)
				return nil
			})
			lookups.Go(func() error {
				s.attachCounts(gctx, e)
				return nil
			})
			_ = lookups.Wait()

			out[i] = e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *eventService) attachVenue(ctx context.Context, e *event.Event) {
	if e.VenueID <= 0 {
		return
	}

	v, err := s.venues.GetVenue(ctx, e.VenueID)
	if err != nil {
		metrics.EnrichmentFallbacksTotal.WithLabelValues("venue").Inc()
		slog.Warn("Venue lookup failed, leaving venue empty", "eventID", e.ID, "venueID", e.VenueID, "error", err)
		return
	}

	e.SetVenue(v.Name)
	if code, ok := v.CountryCode(); ok {
		e.SetCountry(code)
	}
}

func (s *eventService) attachCounts(ctx context.Context, e *event.Event) {
	tickets, err := collectPages(ctx, s.pageSize, func(ctx context.Context, page event.Page) ([]event.Ticket, error) {
		return s.ticketing.ListTickets(ctx, e.ID, page)
	})
	if err != nil {
		metrics.EnrichmentFallbacksTotal.WithLabelValues("tickets").Inc()
		slog.Warn("Ticket lookup failed, leaving counts empty", "eventID", e.ID, "error", err)
		return
	}

	e.SetCounts(s.statuses.Count(tickets))
}

func (s *eventService) CreateEvent(ctx context.Context, cmd *event.CreateEventCommand) (*dto.CreatedEventResponse, error) {
	if err := cmd.ValidateAll(); err != nil {
		return nil, err
	}
	if err := s.ticketing.Ready(); err != nil {
		return nil, err
	}
	if err := s.mirrors.Ready(); err != nil {
		return nil, err
	}

	created, err := s.ticketing.CreateEvent(ctx, cmd)
	if err != nil {
		return nil, err
	}

	mirror, err := s.mirrors.CreateEvent(ctx, cmd.ToMirror(created))
	if err != nil {
		slog.Error("Event created in ticketing system but mirroring failed",
			"eventID", created.ID,
			"error", err,
		)
		return nil, err
	}

	now := s.clock.Now()
	e := event.NewEvent(*created, now)
	s.attachVenue(ctx, e)

	publishActivity(ctx, s.publisher, activity.New(activity.KindEventCreated, strconv.FormatInt(created.ID, 10), created.Name, now))

	slog.Info("Event created", "eventID", created.ID, "contentID", mirror.ID)
	return &dto.CreatedEventResponse{Event: e, ContentID: mirror.ID}, nil
}

func (s *eventService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummary{TotalEvents: len(events)}
	for _, e := range events {
		if e.Status == event.StatusUpcoming {
			summary.UpcomingEvents++
		}
		if e.AttendeeCount != nil {
			summary.TotalAttendees += *e.AttendeeCount
		}
	}

	return summary, nil
}

func (s *eventService) ListMirroredEvents(ctx context.Context) ([]event.MirrorView, error) {
	if err := s.mirrors.Ready(); err != nil {
		return nil, err
	}

	mirrors, err := s.mirrors.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]event.MirrorView, len(mirrors))
	for i, m := range mirrors {
		views[i] = event.NewMirrorView(m, now)
	}

	return views, nil
}
