package controller

import (
	"github.com/gofiber/fiber/v2"
)

// UpstreamCheck reports whether an upstream client has what it needs to be
// called.
type UpstreamCheck struct {
	Name  string
	Ready func() error
}

type HealthController interface {
	Health(c *fiber.Ctx) error
}

type healthController struct {
	checks []UpstreamCheck
}

func NewHealthController(app *fiber.App, checks ...UpstreamCheck) HealthController {
	ctrl := &healthController{checks: checks}

	app.Get("/health", ctrl.Health)

	return ctrl
}

// Health godoc
// @Summary      Health check
// @Description  Returns the health status of the service and whether each upstream is configured
// @Tags         Health
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]any  "Service is healthy"
// @Router       /health [get]
func (ctrl *healthController) Health(c *fiber.Ctx) error {
	upstreams := make(map[string]string, len(ctrl.checks))
	for _, check := range ctrl.checks {
		if err := check.Ready(); err != nil {
			upstreams[check.Name] = err.Error()
			continue
		}
		upstreams[check.Name] = "ready"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "ok",
		"upstreams": upstreams,
	})
}
