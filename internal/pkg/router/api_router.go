package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/aquaworks/AquaDesk/app/controllers"
	"github.com/aquaworks/AquaDesk/internal/pkg/constants"
	"github.com/aquaworks/AquaDesk/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute, limiter.New(limiter.Config{Max: 120}))

	v1 := api.Group(constants.APIV1Route)

	// Auth
	v1.Post("/login", controllers.HandleLogin)
	v1.Post("/logout", middleware.RequireAuth, controllers.HandleLogout)
	v1.Get("/me", middleware.RequireAuth, controllers.HandleMe)

	authed := v1.Group("", middleware.RequireAuth)

	// Directory
	authed.Get("/branches", controllers.HandleListBranches)
	authed.Post("/branches", controllers.HandleCreateBranch)
	authed.Put("/branches/:id", controllers.HandleUpdateBranch)
	authed.Delete("/branches/:id", middleware.RequireAdmin, controllers.HandleDeleteBranch)

	authed.Get("/funds", controllers.HandleListFunds)
	authed.Post("/funds", controllers.HandleCreateFund)
	authed.Get("/funds/:id", controllers.HandleGetFund)
	authed.Put("/funds/:id", controllers.HandleUpdateFund)
	authed.Delete("/funds/:id", middleware.RequireAdmin, controllers.HandleDeleteFund)
	authed.Get("/funds/:id/ledger", controllers.HandleFundLedger)

	authed.Get("/collectors", controllers.HandleListCollectors)
	authed.Post("/collectors", controllers.HandleCreateCollector)
	authed.Put("/collectors/:id", controllers.HandleUpdateCollector)
	authed.Delete("/collectors/:id", middleware.RequireAdmin, controllers.HandleDeleteCollector)

	authed.Get("/suppliers", controllers.HandleListSuppliers)
	authed.Post("/suppliers", controllers.HandleCreateSupplier)
	authed.Put("/suppliers/:id", controllers.HandleUpdateSupplier)
	authed.Delete("/suppliers/:id", middleware.RequireAdmin, controllers.HandleDeleteSupplier)

	// Tariffs
	authed.Get("/rate-plans", controllers.HandleListRatePlans)
	authed.Post("/rate-plans", controllers.HandleCreateRatePlan)
	authed.Get("/rate-plans/:id", controllers.HandleGetRatePlan)
	authed.Put("/rate-plans/:id", controllers.HandleUpdateRatePlan)
	authed.Delete("/rate-plans/:id", middleware.RequireAdmin, controllers.HandleDeleteRatePlan)

	// Subscribers
	authed.Get("/subscribers", controllers.HandleListSubscribers)
	authed.Post("/subscribers", controllers.HandleCreateSubscriber)
	authed.Get("/subscribers/:id", controllers.HandleGetSubscriber)
	authed.Put("/subscribers/:id", controllers.HandleUpdateSubscriber)
	authed.Delete("/subscribers/:id", middleware.RequireAdmin, controllers.HandleDeleteSubscriber)
	authed.Get("/subscribers/:id/statement", controllers.HandleSubscriberStatement)

	// Transactions
	authed.Get("/readings", controllers.HandleListReadings)
	authed.Post("/readings", controllers.HandleRecordReading)
	authed.Get("/readings/:id", controllers.HandleGetReading)

	authed.Get("/invoices", controllers.HandleListInvoices)
	authed.Get("/invoices/:id", controllers.HandleGetInvoice)

	authed.Get("/receipts", controllers.HandleListReceipts)
	authed.Post("/receipts", controllers.HandleRecordReceipt)
	authed.Get("/receipts/:id", controllers.HandleGetReceipt)

	authed.Get("/expenses", controllers.HandleListExpenses)
	authed.Post("/expenses", controllers.HandleRecordExpense)
	authed.Get("/expenses/:id", controllers.HandleGetExpense)

	authed.Get("/settlements", controllers.HandleListSettlements)
	authed.Post("/settlements", controllers.HandleRecordSettlement)
	authed.Get("/settlements/:id", controllers.HandleGetSettlement)

	// Posting state machine. Role checks live in the ledger engine; the
	// routes only require a session.
	authed.Post("/transactions/:kind/:id/post", controllers.HandlePostTransaction)
	authed.Post("/transactions/:kind/:id/unpost", controllers.HandleUnpostTransaction)
	authed.Delete("/transactions/:kind/:id", controllers.HandleDeleteTransaction)

	// Reporting
	authed.Get("/journal", controllers.HandleListJournal)

	// Period close
	authed.Get("/close-period", controllers.HandleGetClosePeriod)
	authed.Post("/close-period", middleware.RequireAdmin, controllers.HandleClosePeriod)

	// User administration
	admin := v1.Group("/users", middleware.RequireAdmin)
	admin.Get("/", controllers.HandleListUsers)
	admin.Post("/", controllers.HandleCreateUser)
	admin.Put("/:id", controllers.HandleUpdateUser)
	admin.Delete("/:id", controllers.HandleDeleteUser)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
