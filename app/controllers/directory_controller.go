package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/aquaworks/AquaDesk/app/models"
	"github.com/aquaworks/AquaDesk/app/repository"
)

// Directory controllers cover the small lookup entities: branches, funds,
// collectors and suppliers.

type branchRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Manager  string `json:"manager"`
}

// HandleCreateBranch creates a branch office.
func HandleCreateBranch(c *fiber.Ctx) error {
	var req branchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	branch := &models.Branch{Name: req.Name, Location: req.Location, Manager: req.Manager}
	if err := branch.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Branch.Create(branch); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

// HandleListBranches lists all branch offices.
func HandleListBranches(c *fiber.Ctx) error {
	branches, err := repository.GetGlobalRepositories().Branch.GetAll()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"branches": branches})
}

// HandleUpdateBranch updates a branch office.
func HandleUpdateBranch(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req branchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	repos := repository.GetGlobalRepositories()
	branch, err := repos.Branch.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	if req.Name != "" {
		branch.Name = req.Name
	}
	if req.Location != "" {
		branch.Location = req.Location
	}
	if req.Manager != "" {
		branch.Manager = req.Manager
	}
	if err := branch.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Branch.Update(branch); err != nil {
		return renderError(c, err)
	}
	return c.JSON(branch)
}

// HandleDeleteBranch removes a branch office.
func HandleDeleteBranch(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Branch.Delete(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

type fundRequest struct {
	Name           string          `json:"name"`
	Manager        string          `json:"manager"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BranchID       uint            `json:"branch_id"`
}

// HandleCreateFund opens a cash fund with its opening balance.
func HandleCreateFund(c *fiber.Ctx) error {
	var req fundRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	fund := models.NewFund(req.Name, req.Manager, req.OpeningBalance, req.BranchID)
	if err := fund.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Fund.Create(fund); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fund)
}

// HandleListFunds lists all cash funds.
func HandleListFunds(c *fiber.Ctx) error {
	funds, err := repository.GetGlobalRepositories().Fund.GetAll()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"funds": funds})
}

// HandleGetFund returns one fund by ID.
func HandleGetFund(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	fund, err := repository.GetGlobalRepositories().Fund.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fund)
}

// HandleUpdateFund updates fund metadata. Balances never change here; they
// move only through receipts and expenses.
func HandleUpdateFund(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req fundRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	repos := repository.GetGlobalRepositories()
	fund, err := repos.Fund.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	if req.Name != "" {
		fund.Name = req.Name
	}
	if req.Manager != "" {
		fund.Manager = req.Manager
	}
	if req.BranchID != 0 {
		fund.BranchID = req.BranchID
	}
	if err := fund.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Fund.Update(fund); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fund)
}

// HandleDeleteFund removes a fund with a zero balance.
func HandleDeleteFund(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	repos := repository.GetGlobalRepositories()
	fund, err := repos.Fund.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	if !fund.Balance.IsZero() {
		return badRequest(c, "fund still holds a balance")
	}
	if err := repos.Fund.Delete(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

type collectorRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	FundID   uint   `json:"fund_id"`
	BranchID uint   `json:"branch_id"`
}

// HandleCreateCollector registers a field collector.
func HandleCreateCollector(c *fiber.Ctx) error {
	var req collectorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	collector := &models.Collector{Name: req.Name, Phone: req.Phone, FundID: req.FundID, BranchID: req.BranchID}
	if err := collector.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Collector.Create(collector); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(collector)
}

// HandleListCollectors lists all field collectors.
func HandleListCollectors(c *fiber.Ctx) error {
	collectors, err := repository.GetGlobalRepositories().Collector.GetAll()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"collectors": collectors})
}

// HandleUpdateCollector updates a field collector.
func HandleUpdateCollector(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req collectorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	repos := repository.GetGlobalRepositories()
	collector, err := repos.Collector.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	if req.Name != "" {
		collector.Name = req.Name
	}
	if req.Phone != "" {
		collector.Phone = req.Phone
	}
	if req.FundID != 0 {
		collector.FundID = req.FundID
	}
	if req.BranchID != 0 {
		collector.BranchID = req.BranchID
	}
	if err := collector.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Collector.Update(collector); err != nil {
		return renderError(c, err)
	}
	return c.JSON(collector)
}

// HandleDeleteCollector removes a field collector.
func HandleDeleteCollector(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Collector.Delete(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

type supplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	PaymentTerms  string `json:"payment_terms"`
	BranchID      uint   `json:"branch_id"`
}

// HandleCreateSupplier registers a supplier.
func HandleCreateSupplier(c *fiber.Ctx) error {
	var req supplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	supplier := &models.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		PaymentTerms:  req.PaymentTerms,
		BranchID:      req.BranchID,
	}
	if err := supplier.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Supplier.Create(supplier); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// HandleListSuppliers lists all suppliers.
func HandleListSuppliers(c *fiber.Ctx) error {
	suppliers, err := repository.GetGlobalRepositories().Supplier.GetAll()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"suppliers": suppliers})
}

// HandleUpdateSupplier updates a supplier.
func HandleUpdateSupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req supplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	repos := repository.GetGlobalRepositories()
	supplier, err := repos.Supplier.GetByID(id)
	if err != nil {
		return renderError(c, err)
	}
	if req.Name != "" {
		supplier.Name = req.Name
	}
	if req.ContactPerson != "" {
		supplier.ContactPerson = req.ContactPerson
	}
	if req.Phone != "" {
		supplier.Phone = req.Phone
	}
	if req.Email != "" {
		supplier.Email = req.Email
	}
	if req.Address != "" {
		supplier.Address = req.Address
	}
	if req.PaymentTerms != "" {
		supplier.PaymentTerms = req.PaymentTerms
	}
	if req.BranchID != 0 {
		supplier.BranchID = req.BranchID
	}
	if err := supplier.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Supplier.Update(supplier); err != nil {
		return renderError(c, err)
	}
	return c.JSON(supplier)
}

// HandleDeleteSupplier removes a supplier.
func HandleDeleteSupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Supplier.Delete(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
