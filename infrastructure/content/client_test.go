package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fazlanhoxton/hxt-events/domain/event"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
	"github.com/fazlanhoxton/hxt-events/infrastructure/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(endpoint, token string, drafts bool) *Client {
	return NewClient(config.ContentConfig{
		Endpoint:      endpoint,
		APIToken:      token,
		IncludeDrafts: drafts,
		Timeout:       2 * time.Second,
	})
}

func TestClient_CreateEvent(t *testing.T) {
	var req graphQLRequest
	var gotAuth, gotDrafts string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotDrafts = r.Header.Get("X-Include-Drafts")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_, _ = w.Write([]byte(`{"data":{"createEvent":{"id":"rec-1","eventName":"Gala","eventIdGuestManager":"5531","defaultScId":"1000"}}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "dato-secret", true)

	created, err := c.CreateEvent(context.Background(), &event.Mirror{
		EventName:           "Gala",
		EventIDGuestManager: "5531",
		DefaultScID:         "1000",
	})

	require.NoError(t, err)
	assert.Equal(t, "rec-1", created.ID)
	assert.Equal(t, "5531", created.EventIDGuestManager)
	assert.Equal(t, "Bearer dato-secret", gotAuth)
	assert.Equal(t, "true", gotDrafts)
	assert.Contains(t, req.Query, "createEvent(data:")
	assert.Equal(t, "Gala", req.Variables["eventName"])
	assert.Equal(t, "5531", req.Variables["eventIdGuestManager"])
	assert.Equal(t, "1000", req.Variables["defaultScId"])
}

func TestClient_CreateEvent_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"field invalid"},{"message":"missing model"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "dato-secret", false)

	_, err := c.CreateEvent(context.Background(), &event.Mirror{EventName: "Gala", EventIDGuestManager: "1"})

	require.Error(t, err)
	var queryErr *QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, []string{"field invalid", "missing model"}, queryErr.Messages)
	assert.Contains(t, err.Error(), "DatoCMS API error: field invalid, missing model")
}

func TestClient_CreateEvent_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"createEvent":null}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "dato-secret", false)

	_, err := c.CreateEvent(context.Background(), &event.Mirror{EventName: "Gala"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestClient_ListEvents(t *testing.T) {
	var hasDrafts bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDrafts = r.Header["X-Include-Drafts"]
		_, _ = w.Write([]byte(`{"data":{"allEvents":[
			{"id":"a","eventName":"Gala","eventIdGuestManager":"1","defaultScId":"10","endDateAndTime":"2025-06-01T23:00:00+00:00"},
			{"id":"b","eventName":"","eventIdGuestManager":"2","endDateAndTime":null}
		]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "dato-secret", false)

	mirrors, err := c.ListEvents(context.Background())

	require.NoError(t, err)
	assert.False(t, hasDrafts)
	require.Len(t, mirrors, 2)
	assert.Equal(t, "Gala", mirrors[0].EventName)
	require.NotNil(t, mirrors[0].EndDateAndTime)
	assert.True(t, mirrors[0].EndDateAndTime.Equal(time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)))
	assert.Nil(t, mirrors[1].EndDateAndTime)
}

func TestClient_ListEvents_InvalidShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "dato-secret", false)

	_, err := c.ListEvents(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid data structure")
}

func TestClient_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "dato-secret", false)

	_, err := c.ListEvents(context.Background())

	var statusErr *upstream.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.Status)
	assert.Equal(t, ServiceName, statusErr.Service)
}

func TestClient_MissingToken(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", "", false)

	assert.ErrorIs(t, c.Ready(), upstream.ErrMissingCredential)
	_, err := c.ListEvents(context.Background())
	assert.ErrorIs(t, err, upstream.ErrMissingCredential)
}
