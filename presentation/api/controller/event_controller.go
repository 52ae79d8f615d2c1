package controller

import (
	"github.com/fazlanhoxton/hxt-events/application"
	"github.com/fazlanhoxton/hxt-events/application/dto"
	"github.com/fazlanhoxton/hxt-events/domain/event"
	"github.com/gofiber/fiber/v2"
)

type EventController interface {
	ListEvents(c *fiber.Ctx) error
	CreateEvent(c *fiber.Ctx) error
	ListMirroredEvents(c *fiber.Ctx) error
	Summary(c *fiber.Ctx) error
}

type eventController struct {
	service application.EventService
}

func NewEventController(app *fiber.App, service application.EventService) EventController {
	ctrl := &eventController{service: service}

	api := app.Group("/api")
	api.Get("/events", ctrl.ListEvents)
	api.Post("/events", ctrl.CreateEvent)
	api.Get("/events/mirror", ctrl.ListMirroredEvents)
	api.Get("/dashboard/summary", ctrl.Summary)

	return ctrl
}

// ListEvents godoc
// @Summary      List enriched events
// @Description  Returns every ticketing event enriched with venue, ticket counts and status. Passing pageNumber or pageSize returns a single page instead.
// @Tags         Events
// @Produce      json
// @Param        pageNumber  query     int  false  "Page number (single-page mode)"
// @Param        pageSize    query     int  false  "Page size (single-page mode, max 100)"
// @Success      200         {object}  dto.EventListResponse  "Enriched events"
// @Failure      500         {object}  dto.ErrorResponse      "Upstream, configuration or validation error"
// @Router       /api/events [get]
func (ctrl *eventController) ListEvents(c *fiber.Ctx) error {
	var (
		events []*event.Event
		err    error
		meta   dto.ListMeta
	)

	if c.Query("pageNumber") != "" || c.Query("pageSize") != "" {
		page := event.Page{
			Number: c.QueryInt("pageNumber", 1),
			Size:   c.QueryInt("pageSize", event.DefaultPageSize),
		}
		meta.PageNumber, meta.PageSize = page.Number, page.Size
		events, err = ctrl.service.ListEventsPage(c.UserContext(), page)
	} else {
		events, err = ctrl.service.ListEvents(c.UserContext())
	}
	if err != nil {
		return respondError(c, err)
	}

	meta.Total = len(events)
	return c.Status(fiber.StatusOK).JSON(dto.EventListResponse{
		Data: events,
		Meta: meta,
	})
}

// CreateEvent godoc
// @Summary      Create event
// @Description  Creates the event in the ticketing system, then mirrors it into the content system
// @Tags         Events
// @Accept       json
// @Produce      json
// @Param        event  body      event.CreateEventCommand  true  "Event data"
// @Success      201    {object}  dto.CreatedEventResponse  "Created event"
// @Failure      500    {object}  dto.ErrorResponse         "Upstream, configuration or validation error"
// @Router       /api/events [post]
func (ctrl *eventController) CreateEvent(c *fiber.Ctx) error {
	var cmd event.CreateEventCommand
	if err := c.BodyParser(&cmd); err != nil {
		return invalidBody(c, err)
	}

	resp, err := ctrl.service.CreateEvent(c.UserContext(), &cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListMirroredEvents godoc
// @Summary      List mirrored events
// @Description  Returns the public copies of events held in the content system
// @Tags         Events
// @Produce      json
// @Success      200  {object}  dto.MirrorListResponse  "Mirrored events"
// @Failure      500  {object}  dto.ErrorResponse       "Upstream, configuration or validation error"
// @Router       /api/events/mirror [get]
func (ctrl *eventController) ListMirroredEvents(c *fiber.Ctx) error {
	views, err := ctrl.service.ListMirroredEvents(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MirrorListResponse{
		Data: views,
		Meta: dto.ListMeta{Total: len(views)},
	})
}

// Summary godoc
// @Summary      Dashboard summary
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary  "Totals across all events"
// @Failure      500  {object}  dto.ErrorResponse     "Upstream, configuration or validation error"
// @Router       /api/dashboard/summary [get]
func (ctrl *eventController) Summary(c *fiber.Ctx) error {
	summary, err := ctrl.service.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
