package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aquaworks/AquaDesk/app/models"
	"github.com/aquaworks/AquaDesk/app/repository"
)

type subscriberRequest struct {
	Name           string `json:"name"`
	MeterNumber    string `json:"meter_number"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	Country        string `json:"country"`
	Governorate    string `json:"governorate"`
	Region         string `json:"region"`
	DocType        string `json:"doc_type"`
	DocNumber      string `json:"doc_number"`
	DocIssueDate   string `json:"doc_issue_date"`
	DocIssuePlace  string `json:"doc_issue_place"`
	Notes          string `json:"notes"`
	InitialReading int64  `json:"initial_reading"`
	RatePlanID     uint   `json:"rate_plan_id"`
	BranchID       uint   `json:"branch_id"`
}

// HandleCreateSubscriber opens a new subscriber account.
func HandleCreateSubscriber(c *fiber.Ctx) error {
	var req subscriberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	subscriber := models.NewSubscriber(req.Name, req.MeterNumber, req.InitialReading, req.RatePlanID, req.BranchID)
	applySubscriberDetails(subscriber, &req)
	if err := subscriber.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if _, err := repository.GetGlobalRepositories().RatePlan.GetByID(req.RatePlanID); err != nil {
		return badRequest(c, "rate plan does not exist")
	}
	if err := repository.GetGlobalRepositories().Subscriber.Create(subscriber); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(subscriber)
}

// HandleListSubscribers lists subscribers with optional branch filter and
// search query.
func HandleListSubscribers(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	if query := c.Query("q"); query != "" {
		subscribers, err := repos.Subscriber.Search(query)
		if err != nil {
			return renderError(c, err)
		}
		return c.JSON(fiber.Map{"subscribers": subscribers})
	}

	offset, limit := pagination(c)
	branchID := uint(c.QueryInt("branch_id", 0))
	var (
		subscribers []models.Subscriber
		err         error
	)
	if branchID > 0 {
		subscribers, err = repos.Subscriber.ListByBranch(branchID, offset, limit)
	} else {
		subscribers, err = repos.Subscriber.List(offset, limit)
	}
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"subscribers": subscribers})
}

// HandleGetSubscriber returns one subscriber by ID.
func HandleGetSubscriber(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	subscriber, err := repository.GetGlobalRepositories().Subscriber.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(subscriber)
}

// HandleUpdateSubscriber updates contact and identity details. Balance and
// meter baseline stay untouched; those move only through ledger operations.
func HandleUpdateSubscriber(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req subscriberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repos := repository.GetGlobalRepositories()
	subscriber, err := repos.Subscriber.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	if req.Name != "" {
		subscriber.Name = req.Name
	}
	if req.MeterNumber != "" {
		subscriber.MeterNumber = req.MeterNumber
	}
	if req.RatePlanID != 0 {
		if _, err := repos.RatePlan.GetByID(req.RatePlanID); err != nil {
			return badRequest(c, "rate plan does not exist")
		}
		subscriber.RatePlanID = req.RatePlanID
	}
	if req.BranchID != 0 {
		subscriber.BranchID = req.BranchID
	}
	applySubscriberDetails(subscriber, &req)
	if err := subscriber.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Subscriber.Update(subscriber); err != nil {
		return renderError(c, err)
	}
	return c.JSON(subscriber)
}

// HandleDeleteSubscriber removes a subscriber. Accounts with an outstanding
// balance stay.
func HandleDeleteSubscriber(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	repos := repository.GetGlobalRepositories()
	subscriber, err := repos.Subscriber.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	if !subscriber.Balance.IsZero() {
		return badRequest(c, "subscriber has an outstanding balance")
	}
	if err := repos.Subscriber.Delete(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func applySubscriberDetails(s *models.Subscriber, req *subscriberRequest) {
	if req.Phone != "" {
		s.Phone = req.Phone
	}
	if req.Email != "" {
		s.Email = req.Email
	}
	if req.Address != "" {
		s.Address = req.Address
	}
	if req.Country != "" {
		s.Country = req.Country
	}
	if req.Governorate != "" {
		s.Governorate = req.Governorate
	}
	if req.Region != "" {
		s.Region = req.Region
	}
	if req.DocType != "" {
		s.DocType = req.DocType
	}
	if req.DocNumber != "" {
		s.DocNumber = req.DocNumber
	}
	if req.DocIssueDate != "" {
		s.DocIssueDate = req.DocIssueDate
	}
	if req.DocIssuePlace != "" {
		s.DocIssuePlace = req.DocIssuePlace
	}
	if req.Notes != "" {
		s.Notes = req.Notes
	}
}
