package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/aquaworks/AquaDesk/app/models"
	"github.com/aquaworks/AquaDesk/app/repository"
)

type tierRequest struct {
	From  int64           `json:"from"`
	To    *int64          `json:"to"`
	Price decimal.Decimal `json:"price"`
}

type ratePlanRequest struct {
	Name     string          `json:"name"`
	FixedFee decimal.Decimal `json:"fixed_fee"`
	Tiers    []tierRequest   `json:"tiers"`
}

func (r *ratePlanRequest) toModel() *models.RatePlan {
	plan := &models.RatePlan{
		Name:     r.Name,
		FixedFee: r.FixedFee,
	}
	for _, t := range r.Tiers {
		plan.Tiers = append(plan.Tiers, models.PriceTier{
			FromUnits: t.From,
			ToUnits:   t.To,
			Price:     t.Price,
		})
	}
	return plan
}

// HandleCreateRatePlan creates a tariff plan with its tier ladder.
func HandleCreateRatePlan(c *fiber.Ctx) error {
	var req ratePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	plan := req.toModel()
	if err := plan.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().RatePlan.Create(plan); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// HandleListRatePlans lists all tariff plans with their tiers.
func HandleListRatePlans(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalRepositories().RatePlan.GetAll()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"rate_plans": plans})
}

// HandleGetRatePlan returns one tariff plan by ID.
func HandleGetRatePlan(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	plan, err := repository.GetGlobalRepositories().RatePlan.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(plan)
}

// HandleUpdateRatePlan replaces a plan's fee and tier ladder. Changes apply
// to future readings only; existing invoices keep their amounts.
func HandleUpdateRatePlan(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req ratePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repos := repository.GetGlobalRepositories()
	existing, err := repos.RatePlan.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	plan := req.toModel()
	plan.ID = existing.ID
	if plan.Name == "" {
		plan.Name = existing.Name
	}
	if err := plan.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.RatePlan.Update(plan); err != nil {
		return renderError(c, err)
	}
	return c.JSON(plan)
}

// HandleDeleteRatePlan removes a tariff plan unless subscribers still use it.
func HandleDeleteRatePlan(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	repos := repository.GetGlobalRepositories()
	inUse, err := repos.RatePlan.InUse(id)
	if err != nil {
		return renderError(c, err)
	}
	if inUse {
		return badRequest(c, "rate plan is in use by subscribers")
	}
	if err := repos.RatePlan.Delete(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
