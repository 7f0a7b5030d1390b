package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminController "profast/controllers/admin"
	parcelController "profast/controllers/parcel"
	paymentController "profast/controllers/payment"
	riderController "profast/controllers/rider"
	trackingController "profast/controllers/tracking"
	userController "profast/controllers/user"
	paymentgw "profast/httpServices/paymentgw"
	"profast/logger"
	"profast/middleware"
	userModel "profast/models/user"
	"profast/repository/postgres"
	adminService "profast/services/admin"
	parcelService "profast/services/parcel"
	paymentService "profast/services/payment"
	riderService "profast/services/rider"
	trackingService "profast/services/tracking"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	parcels := postgres.NewParcelRepo(db)
	events := postgres.NewEventRepo(db)
	users := postgres.NewUserRepo(db)
	riders := postgres.NewRiderRepo(db)
	payments := postgres.NewPaymentRepo(db)

	gateway := paymentgw.NewClient(os.Getenv("PAYMENT_GW_BASE_URL"), os.Getenv("PAYMENT_GW_SECRET_KEY"))
	asyncLogger := logger.NewAsyncLogger(db)
	auth := middleware.NewAuth(users)

	parcelCtl := parcelController.NewParcelController(parcelService.NewService(parcels, events), asyncLogger)
	trackingCtl := trackingController.NewTrackingController(trackingService.NewService(events), asyncLogger)
	paymentCtl := paymentController.NewPaymentController(paymentService.NewService(parcels, payments, events, gateway), asyncLogger)
	riderCtl := riderController.NewRiderController(riderService.NewService(riders, users), asyncLogger)
	adminCtl := adminController.NewAdminController(adminService.NewService(parcels, users, riders), asyncLogger)
	userCtl := userController.NewUserController(users, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("🚀 ProFast Server is Running...")
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/users", userCtl.Upsert)
	api.Get("/users/:email/role", userCtl.GetRole)

	/*=============================================================================
	| Parcel Routes
	===============================================================================*/
	parcelGroup := api.Group("/parcels")

	parcelGroup.Post("/", auth.RequireAuth(), parcelCtl.Create)
	parcelGroup.Get("/mine", auth.RequireAuth(), parcelCtl.ListMine)
	parcelGroup.Get("/:id", auth.RequireAuth(), parcelCtl.Get)

	parcelGroup.Post("/:id/assign", auth.RequireRole(userModel.RoleAdmin), parcelCtl.Assign)
	parcelGroup.Delete("/:id", auth.RequireRole(userModel.RoleAdmin), parcelCtl.Delete)

	parcelGroup.Patch("/:id/status", auth.RequireRole(userModel.RoleRider), parcelCtl.UpdateStatus)
	parcelGroup.Post("/:id/cashout", auth.RequireRole(userModel.RoleRider), parcelCtl.CashOut)

	/*=============================================================================
	| Rider Routes
	===============================================================================*/
	api.Get("/rider/parcels", auth.RequireRole(userModel.RoleRider), parcelCtl.RiderPending)
	api.Get("/rider/completed", auth.RequireRole(userModel.RoleRider), parcelCtl.RiderCompleted)

	riderGroup := api.Group("/riders")
	riderGroup.Post("/", auth.RequireAuth(), riderCtl.Apply)
	riderGroup.Get("/", auth.RequireRole(userModel.RoleAdmin), riderCtl.List)
	riderGroup.Patch("/:id/status", auth.RequireRole(userModel.RoleAdmin), riderCtl.SetStatus)
	riderGroup.Delete("/:id", auth.RequireRole(userModel.RoleAdmin), riderCtl.Delete)

	/*=============================================================================
	| Tracking Routes
	===============================================================================*/
	trackingGroup := api.Group("/tracking")
	trackingGroup.Post("/", auth.RequireAuth(), trackingCtl.Append)
	trackingGroup.Get("/:trackingId", auth.RequireAuth(), trackingCtl.History)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	paymentGroup := api.Group("/payments")
	paymentGroup.Post("/intent", auth.RequireAuth(), paymentCtl.CreateIntent)
	paymentGroup.Post("/", auth.RequireAuth(), paymentCtl.Record)
	paymentGroup.Get("/", auth.RequireAuth(), paymentCtl.List)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	api.Get("/admin/dashboard", auth.RequireRole(userModel.RoleAdmin), adminCtl.Dashboard)
}
