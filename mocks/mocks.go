package mocks

import (
	"context"

	"github.com/fazlanhoxton/hxt-events/application/dto"
	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/domain/event"
	"github.com/fazlanhoxton/hxt-events/domain/venue"
	"github.com/stretchr/testify/mock"
)

// MockActivityPublisher is a mock implementation of kafka.ActivityPublisher
type MockActivityPublisher struct {
	mock.Mock
}

func (m *MockActivityPublisher) Publish(ctx context.Context, a *activity.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActivityPublisher) PublishBatch(ctx context.Context, activities []*activity.Activity) error {
	args := m.Called(ctx, activities)
	return args.Error(0)
}

func (m *MockActivityPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockActivityRepository is a mock implementation of activity.Repository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) InsertBatch(ctx context.Context, activities []*activity.Activity) error {
	args := m.Called(ctx, activities)
	return args.Error(0)
}

func (m *MockActivityRepository) GetMetrics(ctx context.Context, query *activity.MetricsQuery) (*activity.MetricsResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activity.MetricsResult), args.Error(1)
}

// MockTicketingRepository is a mock implementation of event.TicketingRepository
type MockTicketingRepository struct {
	mock.Mock
}

func (m *MockTicketingRepository) Ready() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTicketingRepository) ListEvents(ctx context.Context, page event.Page) ([]event.Record, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Record), args.Error(1)
}

func (m *MockTicketingRepository) ListTickets(ctx context.Context, eventID int64, page event.Page) ([]event.Ticket, error) {
	args := m.Called(ctx, eventID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Ticket), args.Error(1)
}

func (m *MockTicketingRepository) CreateEvent(ctx context.Context, cmd *event.CreateEventCommand) (*event.Record, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Record), args.Error(1)
}

// MockMirrorRepository is a mock implementation of event.MirrorRepository
type MockMirrorRepository struct {
	mock.Mock
}

func (m *MockMirrorRepository) Ready() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMirrorRepository) CreateEvent(ctx context.Context, mirror *event.Mirror) (*event.Mirror, error) {
	args := m.Called(ctx, mirror)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Mirror), args.Error(1)
}

func (m *MockMirrorRepository) ListEvents(ctx context.Context) ([]event.Mirror, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Mirror), args.Error(1)
}

// MockVenueRepository is a mock implementation of venue.Repository
type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) Ready() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockVenueRepository) GetVenue(ctx context.Context, id int64) (*venue.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepository) ListVenues(ctx context.Context, query venue.ListQuery) (*venue.Page, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Page), args.Error(1)
}

func (m *MockVenueRepository) CreateVenue(ctx context.Context, cmd *venue.CreateVenueCommand) (*venue.Venue, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

// MockEventService is a mock implementation of application.EventService
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) ListEvents(ctx context.Context) ([]*event.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*event.Event), args.Error(1)
}

func (m *MockEventService) ListEventsPage(ctx context.Context, page event.Page) ([]*event.Event, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*event.Event), args.Error(1)
}

func (m *MockEventService) CreateEvent(ctx context.Context, cmd *event.CreateEventCommand) (*dto.CreatedEventResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreatedEventResponse), args.Error(1)
}

func (m *MockEventService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardSummary), args.Error(1)
}

func (m *MockEventService) ListMirroredEvents(ctx context.Context) ([]event.MirrorView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.MirrorView), args.Error(1)
}

// MockVenueService is a mock implementation of application.VenueService
type MockVenueService struct {
	mock.Mock
}

func (m *MockVenueService) ListVenues(ctx context.Context, query venue.ListQuery) (*venue.Page, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Page), args.Error(1)
}

func (m *MockVenueService) CreateVenue(ctx context.Context, cmd *venue.CreateVenueCommand) (*venue.Venue, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

// MockActivityService is a mock implementation of application.ActivityService
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) GetMetrics(ctx context.Context, query *activity.MetricsQuery) (*dto.MetricsResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MetricsResponse), args.Error(1)
}
