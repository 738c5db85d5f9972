package routes

import (
	"h4g-voucherhub/internal/adapters/http/handlers"
	"h4g-voucherhub/internal/adapters/http/middleware"
	"h4g-voucherhub/internal/adapters/persistence/repositories"
	"h4g-voucherhub/internal/adapters/storage"
	"h4g-voucherhub/internal/config"
	"h4g-voucherhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, store storage.ObjectStore) *services.ReportService {
	// Initialize repositories
	productRepo := repositories.NewProductRepository(db)
	residentRepo := repositories.NewResidentRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	preOrderRepo := repositories.NewPreOrderRepository(db)
	voucherTaskRepo := repositories.NewVoucherTaskRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	passwordResetRepo := repositories.NewPasswordResetRepository(db)

	// Initialize services
	authService := services.NewAuthService(residentRepo, cfg.JWT)
	residentService := services.NewResidentService(residentRepo, passwordResetRepo, store, cfg.Voucher.StartingBalance)
	productService := services.NewProductService(db, productRepo, store)
	transactionService := services.NewTransactionService(db, transactionRepo)
	preOrderService := services.NewPreOrderService(preOrderRepo, productRepo, residentRepo)
	voucherService := services.NewVoucherService(db, voucherTaskRepo, residentRepo)
	reportService := services.NewReportService(productRepo, preOrderRepo, reportRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	residentHandler := handlers.NewResidentHandler(residentService)
	productHandler := handlers.NewProductHandler(productService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	preOrderHandler := handlers.NewPreOrderHandler(preOrderService)
	voucherHandler := handlers.NewVoucherHandler(voucherService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	residentRoutes := apiV1.Group("/residents")
	setupResidentRoutes(residentRoutes, residentHandler, cfg)

	productRoutes := apiV1.Group("/products")
	productRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProductRoutes(productRoutes, productHandler)

	transactionRoutes := apiV1.Group("/transactions")
	transactionRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTransactionRoutes(transactionRoutes, transactionHandler)

	preOrderRoutes := apiV1.Group("/preorders")
	preOrderRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPreOrderRoutes(preOrderRoutes, preOrderHandler)

	voucherRoutes := apiV1.Group("/vouchers")
	voucherRoutes.Use(middleware.AuthMiddleware(cfg))
	setupVoucherRoutes(voucherRoutes, voucherHandler)

	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	reportRoutes.Use(middleware.AdminOnly())
	setupReportRoutes(reportRoutes, reportHandler)

	// The cron scheduler reuses the same report service
	return reportService
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.Refresh)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupResidentRoutes configures resident account routes.
// Filing a password reset is the only public operation; residents locked
// out of their account must still be able to reach it.
func setupResidentRoutes(router fiber.Router, handler *handlers.ResidentHandler, cfg *config.Config) {
	router.Post("/password-reset", middleware.StrictRateLimiter(), handler.RequestPasswordReset)

	router.Use(middleware.AuthMiddleware(cfg))

	// Static paths before :id so they don't get captured as user ids
	router.Get("/lookup", middleware.AdminOnly(), handler.LookupResident)
	router.Get("/password-reset", middleware.AdminOnly(), handler.ListPasswordResets)

	router.Post("/", middleware.AdminOnly(), handler.CreateResident)
	router.Get("/", middleware.AdminOnly(), handler.ListResidents)
	router.Get("/:id", handler.GetResident)
	router.Put("/:id", middleware.AdminOnly(), handler.UpdateResident)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteResident)
	router.Put("/:id/balance", middleware.AdminOnly(), handler.SetBalance)
	router.Put("/:id/password-reset", middleware.AdminOnly(), handler.ResetPassword)
	router.Post("/:id/image", handler.UploadResidentImage)
	router.Get("/:id/image", handler.GetResidentImage)
}

// setupProductRoutes configures product catalog routes
func setupProductRoutes(router fiber.Router, handler *handlers.ProductHandler) {
	router.Get("/", handler.ListProducts)
	router.Get("/:id", handler.GetProduct)
	router.Get("/:id/image", handler.GetProductImage)

	router.Post("/", middleware.AdminOnly(), handler.CreateProduct)
	router.Put("/:id", middleware.AdminOnly(), handler.UpdateProduct)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteProduct)
	router.Put("/:id/stock", middleware.AdminOnly(), handler.UpdateStock)
	router.Post("/:id/stock/add", middleware.AdminOnly(), handler.AddStock)
	router.Post("/:id/image", middleware.AdminOnly(), handler.UploadProductImage)
}

// setupTransactionRoutes configures purchase routes
func setupTransactionRoutes(router fiber.Router, handler *handlers.TransactionHandler) {
	router.Post("/", handler.Purchase)
	router.Get("/", middleware.AdminOnly(), handler.ListTransactions)
	router.Get("/user/:userId", handler.ListUserTransactions)
	router.Get("/:id", handler.GetTransaction)
	router.Put("/:id", handler.UpdateQuantity)
	router.Delete("/:id", handler.CancelTransaction)
}

// setupPreOrderRoutes configures pre-order queue routes
func setupPreOrderRoutes(router fiber.Router, handler *handlers.PreOrderHandler) {
	router.Post("/", handler.CreatePreOrder)
	router.Get("/", middleware.AdminOnly(), handler.ListPreOrders)
	router.Get("/user/:userId", handler.ListUserPreOrders)
	router.Get("/product/:productId", middleware.AdminOnly(), handler.ListProductPreOrders)
	router.Get("/:id", handler.GetPreOrder)
	router.Delete("/:id", handler.DeletePreOrder)
}

// setupVoucherRoutes configures voucher task routes
func setupVoucherRoutes(router fiber.Router, handler *handlers.VoucherHandler) {
	router.Get("/", handler.ListVoucherTasks)
	router.Get("/user/:userId", handler.ListUserVoucherTasks)
	router.Get("/:id", handler.GetVoucherTask)
	router.Post("/:id/claim", handler.ClaimVoucherTask)
	router.Post("/:id/unclaim", handler.UnclaimVoucherTask)

	router.Post("/", middleware.AdminOnly(), handler.CreateVoucherTask)
	router.Put("/:id", middleware.AdminOnly(), handler.UpdateVoucherTask)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteVoucherTask)
	router.Post("/:id/approve", middleware.AdminOnly(), handler.ApproveVoucherTask)
	router.Post("/:id/unapprove", middleware.AdminOnly(), handler.UnapproveVoucherTask)
	router.Post("/:id/reject", middleware.AdminOnly(), handler.RejectVoucherTask)
}

// setupReportRoutes configures report routes (Admin only)
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/inventory", handler.GetInventory)
	router.Post("/", handler.GenerateReport)
	router.Get("/latest", handler.GetLatestReport)
	router.Get("/latest/download", handler.DownloadLatestReport)
}
