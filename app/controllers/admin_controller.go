package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aquaworks/AquaDesk/app/models"
	"github.com/aquaworks/AquaDesk/app/repository"
	"github.com/aquaworks/AquaDesk/internal/pkg/ledger"
	"github.com/aquaworks/AquaDesk/internal/pkg/usercontext"
)

// HandlePostTransaction locks one transactional record against non-admin
// modification. The kind comes from the route.
func HandlePostTransaction(c *fiber.Ctx) error {
	kind, id, err := kindAndID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := ledgerService.Post(usercontext.Actor(c), kind, id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "posted"})
}

// HandleUnpostTransaction reopens a posted record for editing.
func HandleUnpostTransaction(c *fiber.Ctx) error {
	kind, id, err := kindAndID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := ledgerService.Unpost(usercontext.Actor(c), kind, id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "unposted"})
}

// HandleDeleteTransaction removes a record and reverses its financial effect.
func HandleDeleteTransaction(c *fiber.Ctx) error {
	kind, id, err := kindAndID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := ledgerService.DeleteTransaction(usercontext.Actor(c), kind, id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func kindAndID(c *fiber.Ctx) (kind ledger.EntityKind, id uint, err error) {
	kind, err = ledger.ParseEntityKind(c.Params("kind"))
	if err != nil {
		return kind, 0, err
	}
	id, err = paramID(c, "id")
	return kind, id, err
}

type closePeriodRequest struct {
	Date string `json:"date"`
}

// HandleClosePeriod moves the period-lock cutoff to the given date.
func HandleClosePeriod(c *fiber.Ctx) error {
	var req closePeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Date == "" {
		return badRequest(c, "date is required")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "date must be formatted as "+DateLayout)
	}
	if err := ledgerService.ClosePeriod(usercontext.Actor(c), date); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"last_closed_date": date.Format(DateLayout)})
}

// HandleGetClosePeriod reports the current period-lock cutoff.
func HandleGetClosePeriod(c *fiber.Ctx) error {
	date, err := ledgerService.LastClosedDate()
	if err != nil {
		return renderError(c, err)
	}
	if date == nil {
		return c.JSON(fiber.Map{"last_closed_date": nil})
	}
	return c.JSON(fiber.Map{"last_closed_date": date.Format(DateLayout)})
}

type userRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	BranchID uint   `json:"branch_id"`
	Active   *bool  `json:"active"`
}

// HandleListUsers lists user accounts.
func HandleListUsers(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	users, err := repository.GetGlobalRepositories().User.List(offset, limit)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// HandleCreateUser creates a user account.
func HandleCreateUser(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Role != models.ROLE_ADMIN && req.Role != models.ROLE_ACCOUNTANT && req.Role != models.ROLE_CLERK {
		return badRequest(c, "role must be admin, accountant or clerk")
	}
	user, err := models.CreateUser(req.Username, req.Name, req.Password, req.Role, req.BranchID)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().User.Create(user); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdateUser updates a user account. Password changes only when a new
// one is supplied.
func HandleUpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repo := repository.GetGlobalRepositories().User
	user, err := repo.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		if req.Role != models.ROLE_ADMIN && req.Role != models.ROLE_ACCOUNTANT && req.Role != models.ROLE_CLERK {
			return badRequest(c, "role must be admin, accountant or clerk")
		}
		user.Role = req.Role
	}
	if req.BranchID != 0 {
		user.BranchID = req.BranchID
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return badRequest(c, err.Error())
		}
	}
	if err := repo.Update(user); err != nil {
		return renderError(c, err)
	}
	return c.JSON(user)
}

// HandleDeleteUser removes a user account. Admins cannot delete themselves.
func HandleDeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if id == usercontext.GetUserID(c) {
		return badRequest(c, "cannot delete your own account")
	}
	if err := repository.GetGlobalRepositories().User.Delete(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
