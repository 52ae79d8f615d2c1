package application

import (
	"context"
	"strconv"

	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/domain/venue"
	"github.com/fazlanhoxton/hxt-events/infrastructure/clock"
	"github.com/fazlanhoxton/hxt-events/infrastructure/messaging/kafka"
)

type VenueService interface {
	ListVenues(ctx context.Context, query venue.ListQuery) (*venue.Page, error)
	CreateVenue(ctx context.Context, cmd *venue.CreateVenueCommand) (*venue.Venue, error)
}

type venueService struct {
	repository venue.Repository
	publisher  kafka.ActivityPublisher
	clock      clock.Clock
}

func NewVenueService(repository venue.Repository, publisher kafka.ActivityPublisher, clk clock.Clock) VenueService {
	return &venueService{
		repository: repository,
		publisher:  publisher,
		clock:      clk,
	}
}

func (s *venueService) ListVenues(ctx context.Context, query venue.ListQuery) (*venue.Page, error) {
	query.Normalize()
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := s.repository.Ready(); err != nil {
		return nil, err
	}

	return s.repository.ListVenues(ctx, query)
}

func (s *venueService) CreateVenue(ctx context.Context, cmd *venue.CreateVenueCommand) (*venue.Venue, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := s.repository.Ready(); err != nil {
		return nil, err
	}

	created, err := s.repository.CreateVenue(ctx, cmd)
	if err != nil {
		return nil, err
	}

	publishActivity(ctx, s.publisher, activity.New(activity.KindVenueCreated, strconv.FormatInt(created.ID, 10), created.Name, s.clock.Now()))

	return created, nil
}
