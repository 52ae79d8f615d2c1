package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	KindEventCreated = "event.created"
	KindVenueCreated = "venue.created"

	SourceTicketing = "ticketing"
)

var validKinds = map[string]bool{
	KindEventCreated: true,
	KindVenueCreated: true,
}

// Activity records an admin action against an upstream system.
type Activity struct {
	ActivityID string    `json:"activity_id"`
	Kind       string    `json:"kind"`
	EntityID   string    `json:"entity_id"`
	Name       string    `json:"name"`
	Source     string    `json:"source"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(kind, entityID, name string, occurredAt time.Time) *Activity {
	return &Activity{
		ActivityID: uuid.New().String(),
		Kind:       kind,
		EntityID:   entityID,
		Name:       name,
		Source:     SourceTicketing,
		OccurredAt: occurredAt.UTC(),
	}
}

type Repository interface {
	InsertBatch(ctx context.Context, activities []*Activity) error
	GetMetrics(ctx context.Context, query *MetricsQuery) (*MetricsResult, error)
}
