package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aquaworks/AquaDesk/app/models"
	"github.com/aquaworks/AquaDesk/app/repository"
	"github.com/aquaworks/AquaDesk/internal/pkg/database"
	"github.com/aquaworks/AquaDesk/internal/pkg/session"
	"github.com/aquaworks/AquaDesk/internal/pkg/usercontext"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin authenticates a user and opens a session.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username and password are required")
	}

	// A failed lookup and a failed password check answer the same way so the
	// response does not leak which usernames exist.
	user, err := repository.GetGlobalRepositories().User.GetByUsername(req.Username)
	if err != nil || !user.CheckPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "invalid credentials",
		})
	}
	if !user.Active {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "account is disabled",
		})
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return renderError(c, err)
	}
	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Username)
	sess.Set(usercontext.KeyRole, user.Role)
	sess.Set(usercontext.KeyBranchID, user.BranchID)
	if err := sess.Save(); err != nil {
		return renderError(c, err)
	}

	database.GetDB().Model(user).Update("last_login_at", time.Now())

	return c.JSON(fiber.Map{
		"id":        user.ID,
		"username":  user.Username,
		"name":      user.Name,
		"role":      user.Role,
		"branch_id": user.BranchID,
	})
}

// HandleLogout destroys the current session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return renderError(c, err)
	}
	if err := sess.Destroy(); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// HandleMe returns the authenticated user's profile.
func HandleMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	user, err := repository.GetGlobalRepositories().User.GetByID(userCtx.UserID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":        user.ID,
		"username":  user.Username,
		"name":      user.Name,
		"role":      user.Role,
		"branch_id": user.BranchID,
		"is_admin":  user.Role == models.ROLE_ADMIN,
	})
}
