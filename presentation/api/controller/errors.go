package controller

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fazlanhoxton/hxt-events/application/dto"
	"github.com/fazlanhoxton/hxt-events/domain/validation"
	"github.com/gofiber/fiber/v2"
)

func invalidBody(c *fiber.Ctx, err error) error {
	return respondError(c, fmt.Errorf("invalid request body: %w", err))
}

// respondError is the error contract of the dashboard routes: every failure,
// validation included, is a 500 carrying only the message.
func respondError(c *fiber.Ctx, err error) error {
	slog.Error("Request failed",
		"method", c.Method(),
		"path", c.Path(),
		"requestID", c.Locals("requestID"),
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: err.Error(),
	})
}

// respondQueryError reports validation failures as 400 with field details and
// falls back to respondError for everything else.
func respondQueryError(c *fiber.Ctx, err error) error {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:  "validation failed",
			Errors: validationErr.Errors,
		})
	}
	return respondError(c, err)
}
