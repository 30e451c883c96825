package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aquaworks/AquaDesk/internal/pkg/session"
	"github.com/aquaworks/AquaDesk/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext for every
// request so controllers never touch the session store directly.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		c.Locals(usercontext.KeyContext, usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		c.Locals(usercontext.KeyContext, usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	role, _ := sess.Get(usercontext.KeyRole).(string)
	branchID, _ := sess.Get(usercontext.KeyBranchID).(uint)

	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   session.GetSessionValue(c, usercontext.KeyUsername),
		Role:       role,
		BranchID:   branchID,
		IsLoggedIn: true,
	}
	c.Locals(usercontext.KeyContext, userCtx)
	c.Locals(usercontext.KeyFromProtected, true)

	return c.Next()
}
