package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fazlanhoxton/hxt-events/infrastructure/upstream"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthResponse struct {
	Status    string            `json:"status"`
	Upstreams map[string]string `json:"upstreams"`
}

func TestHealthController(t *testing.T) {
	app := fiber.New()
	NewHealthController(app,
		UpstreamCheck{Name: "Guest Manager", Ready: func() error { return nil }},
		UpstreamCheck{Name: "DatoCMS", Ready: func() error {
			return fmt.Errorf("%w: DatoCMS token is not configured", upstream.ErrMissingCredential)
		}},
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[healthResponse](t, resp)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "ready", result.Upstreams["Guest Manager"])
	assert.Contains(t, result.Upstreams["DatoCMS"], "DatoCMS token is not configured")
}
