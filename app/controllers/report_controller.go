package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/aquaworks/AquaDesk/app/models"
	"github.com/aquaworks/AquaDesk/app/repository"
)

// statementLine is one journal leg with the balance after applying it.
type statementLine struct {
	models.JournalEntry
	Balance decimal.Decimal `json:"balance"`
}

// withRunningBalance folds debits and credits into a per-line balance. For
// subscriber and fund accounts a debit raises the balance.
func withRunningBalance(entries []models.JournalEntry, opening decimal.Decimal) []statementLine {
	lines := make([]statementLine, 0, len(entries))
	balance := opening
	for _, e := range entries {
		balance = balance.Add(e.Debit).Sub(e.Credit)
		lines = append(lines, statementLine{JournalEntry: e, Balance: balance})
	}
	return lines
}

// HandleSubscriberStatement returns a subscriber's journal history with a
// running balance.
func HandleSubscriberStatement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	subscriber, err := repository.GetGlobalRepositories().Subscriber.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	entries, err := ledgerService.Statement(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"subscriber": subscriber,
		"entries":    withRunningBalance(entries, decimal.Zero),
	})
}

// HandleFundLedger returns a fund's journal history with a running balance
// seeded from the opening balance.
func HandleFundLedger(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	fund, err := repository.GetGlobalRepositories().Fund.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	entries, err := ledgerService.FundLedger(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"fund":    fund,
		"entries": withRunningBalance(entries, fund.OpeningBalance),
	})
}

// HandleListJournal lists the raw journal, optionally filtered by reference.
func HandleListJournal(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	refType := c.Query("reference_type")
	refID := uint(c.QueryInt("reference_id", 0))
	if refType != "" && refID > 0 {
		entries, err := repos.Journal.ListByReference(refType, refID)
		if err != nil {
			return renderError(c, err)
		}
		return c.JSON(fiber.Map{"entries": entries})
	}
	offset, limit := pagination(c)
	entries, err := repos.Journal.List(offset, limit)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries})
}
