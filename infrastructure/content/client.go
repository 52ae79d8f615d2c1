package content

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fazlanhoxton/hxt-events/domain/event"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
	"github.com/fazlanhoxton/hxt-events/infrastructure/upstream"
)

const ServiceName = "DatoCMS"

const createEventMutation = `mutation CreateEvent($eventName: String!, $eventIdGuestManager: String!, $defaultScId: String) {
  createEvent(data: {eventName: $eventName, eventIdGuestManager: $eventIdGuestManager, defaultScId: $defaultScId}) {
    id
    eventName
    eventIdGuestManager
    defaultScId
  }
}`

const allEventsQuery = `query AllEvents {
  allEvents {
    id
    defaultScId
    eventIdGuestManager
    eventName
    endDateAndTime
    startDateAndTime
  }
}`

// QueryError carries the messages of a GraphQL errors array.
type QueryError struct {
	Messages []string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s API error: %s", ServiceName, strings.Join(e.Messages, ", "))
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type createEventData struct {
	CreateEvent *event.Mirror `json:"createEvent"`
}

type allEventsData struct {
	AllEvents []event.Mirror `json:"allEvents"`
}

// Client reads and writes event mirrors in the DatoCMS content API.
type Client struct {
	endpoint string
	http     *upstream.Client
}

func NewClient(cfg config.ContentConfig) *Client {
	headers := map[string]string{}
	if cfg.IncludeDrafts {
		headers["X-Include-Drafts"] = "true"
	}
	if cfg.ExcludeInvalid {
		headers["X-Exclude-Invalid"] = "true"
	}

	return &Client{
		endpoint: cfg.Endpoint,
		http: upstream.NewClient(upstream.Options{
			Service: ServiceName,
			Token:   cfg.APIToken,
			Scheme:  "Bearer",
			Timeout: cfg.Timeout,
			Headers: headers,
		}),
	}
}

func (c *Client) Ready() error {
	return c.http.Ready()
}

func (c *Client) CreateEvent(ctx context.Context, m *event.Mirror) (*event.Mirror, error) {
	vars := map[string]any{
		"eventName":           m.EventName,
		"eventIdGuestManager": m.EventIDGuestManager,
		"defaultScId":         m.DefaultScID,
	}

	data, err := execute[createEventData](ctx, c, createEventMutation, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to create event in %s: %w", ServiceName, err)
	}
	if data.CreateEvent == nil {
		return nil, fmt.Errorf("failed to create event in %s: empty response", ServiceName)
	}
	return data.CreateEvent, nil
}

func (c *Client) ListEvents(ctx context.Context) ([]event.Mirror, error) {
	data, err := execute[allEventsData](ctx, c, allEventsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list events from %s: %w", ServiceName, err)
	}
	if data.AllEvents == nil {
		return nil, fmt.Errorf("invalid data structure received from %s", ServiceName)
	}
	return data.AllEvents, nil
}

func execute[T any](ctx context.Context, c *Client, query string, vars map[string]any) (T, error) {
	var zero T

	resp, err := upstream.Call[graphQLResponse[T]](ctx, c.http, upstream.Request{
		Method: http.MethodPost,
		URL:    c.endpoint,
		Body:   graphQLRequest{Query: query, Variables: vars},
	})
	if err != nil {
		return zero, err
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}
		return zero, &QueryError{Messages: messages}
	}

	return resp.Data, nil
}
