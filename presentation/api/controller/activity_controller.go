package controller

import (
	"github.com/fazlanhoxton/hxt-events/application"
	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/gofiber/fiber/v2"
)

type ActivityController interface {
	GetMetrics(c *fiber.Ctx) error
}

type activityController struct {
	service application.ActivityService
}

func NewActivityController(app *fiber.App, service application.ActivityService) ActivityController {
	ctrl := &activityController{service: service}

	api := app.Group("/api")
	api.Get("/activity/metrics", ctrl.GetMetrics)

	return ctrl
}

// GetMetrics godoc
// @Summary      Get admin activity metrics
// @Description  Aggregated counts of admin actions within a time range
// @Tags         Activity
// @Produce      json
// @Param        from      query     int     true   "Start timestamp (Unix)"
// @Param        to        query     int     true   "End timestamp (Unix)"
// @Param        kind      query     string  false  "Activity kind (event.created, venue.created)"
// @Param        group_by  query     string  false  "Group results by (kind, hour, day)"
// @Success      200       {object}  dto.MetricsResponse  "Metrics data"
// @Failure      400       {object}  dto.ErrorResponse    "Validation error"
// @Failure      500       {object}  dto.ErrorResponse    "Internal server error"
// @Router       /api/activity/metrics [get]
func (ctrl *activityController) GetMetrics(c *fiber.Ctx) error {
	query := &activity.MetricsQuery{
		Kind:    c.Query("kind"),
		From:    int64(c.QueryInt("from", 0)),
		To:      int64(c.QueryInt("to", 0)),
		GroupBy: c.Query("group_by"),
	}

	resp, err := ctrl.service.GetMetrics(c.UserContext(), query)
	if err != nil {
		return respondQueryError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
