package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aquaworks/AquaDesk/app/repository"
	"github.com/aquaworks/AquaDesk/internal/pkg/database"
	"github.com/aquaworks/AquaDesk/internal/pkg/ledger"
	"github.com/aquaworks/AquaDesk/internal/pkg/usercontext"
)

var ledgerService *ledger.Service

// InitializeControllers wires the ledger service and repositories. Must run
// after the database is up.
func InitializeControllers() {
	db := database.GetDB()
	repository.InitializeFactory(db)
	ledgerService = ledger.NewServiceFromDB(db)
}

type readingRequest struct {
	SubscriberID   uint   `json:"subscriber_id"`
	PeriodYear     int    `json:"period_year"`
	PeriodMonth    int    `json:"period_month"`
	CurrentReading int64  `json:"current_reading"`
	Date           string `json:"date"`
}

// HandleRecordReading enters a meter reading and returns it with the invoice
// it produced.
func HandleRecordReading(c *fiber.Ctx) error {
	var req readingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "date must be formatted as "+DateLayout)
	}

	userCtx := usercontext.GetUserContext(c)
	reading, invoice, err := ledgerService.RecordReading(usercontext.Actor(c), ledger.ReadingInput{
		SubscriberID:   req.SubscriberID,
		PeriodYear:     req.PeriodYear,
		PeriodMonth:    req.PeriodMonth,
		CurrentReading: req.CurrentReading,
		Date:           date,
		BranchID:       userCtx.BranchID,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reading": reading,
		"invoice": invoice,
	})
}

// HandleListReadings lists readings, optionally scoped to one subscriber.
func HandleListReadings(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	subscriberID := uint(c.QueryInt("subscriber_id", 0))
	readings, err := repository.GetGlobalRepositories().Transaction.ListReadings(subscriberID, offset, limit)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"readings": readings})
}

// HandleGetReading returns one reading by ID.
func HandleGetReading(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	reading, err := repository.GetGlobalRepositories().Transaction.GetReading(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(reading)
}

// HandleListInvoices lists invoices, optionally scoped to one subscriber.
func HandleListInvoices(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	subscriberID := uint(c.QueryInt("subscriber_id", 0))
	invoices, err := repository.GetGlobalRepositories().Transaction.ListInvoices(subscriberID, offset, limit)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"invoices": invoices})
}

// HandleGetInvoice returns one invoice by ID.
func HandleGetInvoice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	invoice, err := repository.GetGlobalRepositories().Transaction.GetInvoice(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(invoice)
}
