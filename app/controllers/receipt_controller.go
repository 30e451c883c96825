package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/aquaworks/AquaDesk/app/repository"
	"github.com/aquaworks/AquaDesk/internal/pkg/ledger"
	"github.com/aquaworks/AquaDesk/internal/pkg/usercontext"
)

type receiptRequest struct {
	SubscriberID  uint            `json:"subscriber_id"`
	FundID        uint            `json:"fund_id"`
	CollectorID   uint            `json:"collector_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description"`
	Reference     string          `json:"reference"`
	Date          string          `json:"date"`
}

// HandleRecordReceipt collects a payment from a subscriber into a fund.
func HandleRecordReceipt(c *fiber.Ctx) error {
	var req receiptRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "date must be formatted as "+DateLayout)
	}

	userCtx := usercontext.GetUserContext(c)
	receipt, err := ledgerService.RecordReceipt(usercontext.Actor(c), ledger.ReceiptInput{
		SubscriberID: req.SubscriberID,
		FundID:       req.FundID,
		CollectorID:  req.CollectorID,
		Amount:       req.Amount,
		Method:       req.PaymentMethod,
		Description:  req.Description,
		Reference:    req.Reference,
		Date:         date,
		BranchID:     userCtx.BranchID,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// HandleListReceipts lists receipts, optionally scoped to one subscriber.
func HandleListReceipts(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	subscriberID := uint(c.QueryInt("subscriber_id", 0))
	receipts, err := repository.GetGlobalRepositories().Transaction.ListReceipts(subscriberID, offset, limit)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"receipts": receipts})
}

// HandleGetReceipt returns one receipt by ID.
func HandleGetReceipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	receipt, err := repository.GetGlobalRepositories().Transaction.GetReceipt(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(receipt)
}
