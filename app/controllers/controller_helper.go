package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aquaworks/AquaDesk/internal/pkg/ledger"
)

// DateLayout is the wire format for business dates in request bodies.
const DateLayout = "2006-01-02"

// renderError maps ledger and database errors to their HTTP status.
func renderError(c *fiber.Ctx, err error) error {
	var (
		validationErr *ledger.ValidationError
		duplicateErr  *ledger.DuplicateBillingError
		permissionErr *ledger.PermissionError
		notFoundErr   *ledger.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_failed",
			"field":   validationErr.Field,
			"message": validationErr.Error(),
		})
	case errors.As(err, &duplicateErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "duplicate_billing",
			"message": duplicateErr.Error(),
		})
	case errors.As(err, &permissionErr):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": permissionErr.Error(),
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": notFoundErr.Error(),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "record not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": err.Error(),
		})
	}
}

// badRequest renders a plain 400 for malformed request bodies and params.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "bad_request",
		"message": message,
	})
}

// paramID reads a numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

// parseDate parses a business date; an empty value defaults to today.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(DateLayout, raw)
}

// pagination reads offset/limit query parameters with sane bounds.
func pagination(c *fiber.Ctx) (offset, limit int) {
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit = c.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return offset, limit
}
