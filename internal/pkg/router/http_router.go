package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aquaworks/AquaDesk/app/controllers"
	"github.com/aquaworks/AquaDesk/internal/pkg/constants"
	"github.com/aquaworks/AquaDesk/internal/pkg/middleware"
	"github.com/aquaworks/AquaDesk/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize controllers with repositories and the ledger service
	controllers.InitializeControllers()

	app.Get(constants.HealthRoute, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
