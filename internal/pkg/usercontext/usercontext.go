package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aquaworks/AquaDesk/app/models"
	"github.com/aquaworks/AquaDesk/internal/pkg/ledger"
)

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	BranchID   uint   `json:"branch_id"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// GetUserContext retrieves the user context from fiber context.
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(KeyContext); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// IsAdmin checks if the current user holds the administrator role
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).Role == models.ROLE_ADMIN
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// Actor converts the request's user context into a ledger actor.
func Actor(c *fiber.Ctx) ledger.Actor {
	ctx := GetUserContext(c)
	return ledger.Actor{ID: ctx.UserID, Role: ctx.Role}
}
