package controller

import (
	"github.com/fazlanhoxton/hxt-events/application"
	"github.com/fazlanhoxton/hxt-events/domain/venue"
	"github.com/gofiber/fiber/v2"
)

type VenueController interface {
	ListVenues(c *fiber.Ctx) error
	CreateVenue(c *fiber.Ctx) error
}

type venueController struct {
	service application.VenueService
}

func NewVenueController(app *fiber.App, service application.VenueService) VenueController {
	ctrl := &venueController{service: service}

	api := app.Group("/api")
	api.Get("/venues", ctrl.ListVenues)
	api.Post("/venues", ctrl.CreateVenue)

	return ctrl
}

// ListVenues godoc
// @Summary      List venues
// @Description  Proxies the ticketing venue list, including addresses
// @Tags         Venues
// @Produce      json
// @Param        pageNumber  query     int     false  "Page number"  default(1)
// @Param        pageSize    query     int     false  "Page size"    default(10)
// @Param        search      query     string  false  "Free-text filter"
// @Success      200         {object}  venue.Page         "Venues"
// @Failure      500         {object}  dto.ErrorResponse  "Upstream, configuration or validation error"
// @Router       /api/venues [get]
func (ctrl *venueController) ListVenues(c *fiber.Ctx) error {
	query := venue.ListQuery{
		PageNumber: c.QueryInt("pageNumber", venue.DefaultPageNumber),
		PageSize:   c.QueryInt("pageSize", venue.DefaultPageSize),
		Search:     c.Query("search"),
	}

	page, err := ctrl.service.ListVenues(c.UserContext(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// CreateVenue godoc
// @Summary      Create venue
// @Tags         Venues
// @Accept       json
// @Produce      json
// @Param        venue  body      venue.CreateVenueCommand  true  "Venue data"
// @Success      201    {object}  venue.Venue        "Created venue"
// @Failure      500    {object}  dto.ErrorResponse  "Upstream, configuration or validation error"
// @Router       /api/venues [post]
func (ctrl *venueController) CreateVenue(c *fiber.Ctx) error {
	var cmd venue.CreateVenueCommand
	if err := c.BodyParser(&cmd); err != nil {
		return invalidBody(c, err)
	}

	created, err := ctrl.service.CreateVenue(c.UserContext(), &cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
