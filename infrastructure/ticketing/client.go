package ticketing

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fazlanhoxton/hxt-events/domain/event"
	"github.com/fazlanhoxton/hxt-events/domain/venue"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
	"github.com/fazlanhoxton/hxt-events/infrastructure/upstream"
)

const ServiceName = "Guest Manager"

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// Client talks to the Guest Manager public API. It serves both the event and
// the venue side of the ticketing system.
type Client struct {
	baseURL string
	http    *upstream.Client
}

func NewClient(cfg config.TicketingConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: upstream.NewClient(upstream.Options{
			Service: ServiceName,
			Token:   cfg.AuthToken,
			Scheme:  cfg.AuthScheme,
			Timeout: cfg.Timeout,
		}),
	}
}

func (c *Client) Ready() error {
	return c.http.Ready()
}

func (c *Client) ListEvents(ctx context.Context, page event.Page) ([]event.Record, error) {
	env, err := upstream.Call[listEnvelope[event.Record]](ctx, c.http, upstream.Request{
		Method: http.MethodGet,
		URL:    c.url("/events", pageParams(page)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return env.Data, nil
}

func (c *Client) ListTickets(ctx context.Context, eventID int64, page event.Page) ([]event.Ticket, error) {
	params := pageParams(page)
	params.Set("filter[event]", strconv.FormatInt(eventID, 10))

	env, err := upstream.Call[listEnvelope[event.Ticket]](ctx, c.http, upstream.Request{
		Method: http.MethodGet,
		URL:    c.url("/tickets", params),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets for event %d: %w", eventID, err)
	}
	return env.Data, nil
}

func (c *Client) CreateEvent(ctx context.Context, cmd *event.CreateEventCommand) (*event.Record, error) {
	created, err := upstream.Call[event.Record](ctx, c.http, upstream.Request{
		Method: http.MethodPost,
		URL:    c.url("/events", nil),
		Body:   cmd.ToTicketingPayload(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &created, nil
}

func (c *Client) GetVenue(ctx context.Context, id int64) (*venue.Venue, error) {
	v, err := upstream.Call[venue.Venue](ctx, c.http, upstream.Request{
		Method: http.MethodGet,
		URL:    c.url("/venues/"+strconv.FormatInt(id, 10), url.Values{"include": {"address"}}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get venue %d: %w", id, err)
	}
	return &v, nil
}

func (c *Client) ListVenues(ctx context.Context, query venue.ListQuery) (*venue.Page, error) {
	params := url.Values{}
	params.Set("include", "address")
	params.Set("page[number]", strconv.Itoa(query.PageNumber))
	params.Set("page[size]", strconv.Itoa(query.PageSize))
	if query.Search != "" {
		params.Set("filter[query]", query.Search)
	}

	page, err := upstream.Call[venue.Page](ctx, c.http, upstream.Request{
		Method: http.MethodGet,
		URL:    c.url("/venues", params),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	if page.Data == nil {
		page.Data = []venue.Venue{}
	}
	return &page, nil
}

func (c *Client) CreateVenue(ctx context.Context, cmd *venue.CreateVenueCommand) (*venue.Venue, error) {
	created, err := upstream.Call[venue.Venue](ctx, c.http, upstream.Request{
		Method: http.MethodPost,
		URL:    c.url("/venues", nil),
		Body:   cmd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return &created, nil
}

func (c *Client) url(path string, params url.Values) string {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func pageParams(page event.Page) url.Values {
	params := url.Values{}
	params.Set("page[number]", strconv.Itoa(page.Number))
	params.Set("page[size]", strconv.Itoa(page.Size))
	return params
}
