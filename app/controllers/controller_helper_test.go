package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aquaworks/AquaDesk/internal/pkg/ledger"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return renderError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, reqErr)
	return resp.StatusCode
}

func TestRenderErrorStatusMapping(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, statusFor(t, &ledger.ValidationError{Field: "amount", Reason: "must be positive"}))
	assert.Equal(t, fiber.StatusConflict, statusFor(t, &ledger.DuplicateBillingError{SubscriberID: 1, Year: 2025, Month: 6}))
	assert.Equal(t, fiber.StatusForbidden, statusFor(t, &ledger.PermissionError{Reason: "record is posted"}))
	assert.Equal(t, fiber.StatusNotFound, statusFor(t, &ledger.NotFoundError{Entity: "subscriber", ID: 9}))
	assert.Equal(t, fiber.StatusNotFound, statusFor(t, gorm.ErrRecordNotFound))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(t, assert.AnError))
}

func TestParseDate(t *testing.T) {
	date, err := parseDate("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), date)

	_, err = parseDate("10.06.2025")
	assert.Error(t, err)

	today, err := parseDate("")
	require.NoError(t, err)
	assert.Equal(t, 0, today.Hour())
}
