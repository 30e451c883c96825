package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/aquaworks/AquaDesk/app/repository"
	"github.com/aquaworks/AquaDesk/internal/pkg/ledger"
	"github.com/aquaworks/AquaDesk/internal/pkg/usercontext"
)

type expenseRequest struct {
	FundID      uint            `json:"fund_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	SupplierID  *uint           `json:"supplier_id"`
	Date        string          `json:"date"`
}

// HandleRecordExpense records a cash outflow from a fund.
func HandleRecordExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "date must be formatted as "+DateLayout)
	}

	userCtx := usercontext.GetUserContext(c)
	expense, err := ledgerService.RecordExpense(usercontext.Actor(c), ledger.ExpenseInput{
		FundID:      req.FundID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Reference:   req.Reference,
		SupplierID:  req.SupplierID,
		Date:        date,
		BranchID:    userCtx.BranchID,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// HandleListExpenses lists expenses.
func HandleListExpenses(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	expenses, err := repository.GetGlobalRepositories().Transaction.ListExpenses(offset, limit)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"expenses": expenses})
}

// HandleGetExpense returns one expense by ID.
func HandleGetExpense(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	expense, err := repository.GetGlobalRepositories().Transaction.GetExpense(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(expense)
}
