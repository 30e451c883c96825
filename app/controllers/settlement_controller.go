package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/aquaworks/AquaDesk/app/repository"
	"github.com/aquaworks/AquaDesk/internal/pkg/ledger"
	"github.com/aquaworks/AquaDesk/internal/pkg/usercontext"
)

type settlementRequest struct {
	SubscriberID uint            `json:"subscriber_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	NewReading   *int64          `json:"new_reading"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
}

// HandleRecordSettlement applies a manual adjustment or meter reset to a
// subscriber account.
func HandleRecordSettlement(c *fiber.Ctx) error {
	var req settlementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "date must be formatted as "+DateLayout)
	}

	userCtx := usercontext.GetUserContext(c)
	settlement, err := ledgerService.RecordSettlement(usercontext.Actor(c), ledger.SettlementInput{
		SubscriberID: req.SubscriberID,
		Type:         req.Type,
		Amount:       req.Amount,
		NewReading:   req.NewReading,
		Description:  req.Description,
		Date:         date,
		BranchID:     userCtx.BranchID,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(settlement)
}

// HandleListSettlements lists settlements, optionally scoped to one subscriber.
func HandleListSettlements(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	subscriberID := uint(c.QueryInt("subscriber_id", 0))
	settlements, err := repository.GetGlobalRepositories().Transaction.ListSettlements(subscriberID, offset, limit)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"settlements": settlements})
}

// HandleGetSettlement returns one settlement by ID.
func HandleGetSettlement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	settlement, err := repository.GetGlobalRepositories().Transaction.GetSettlement(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(settlement)
}
