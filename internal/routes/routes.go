// Package routes wires repositories, services, and handlers onto the
// fiber application.
package routes

import (
	"github.com/inanin-user/crm-system-sub001/internal/handlers"
	"github.com/inanin-user/crm-system-sub001/internal/middleware"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"
	"github.com/inanin-user/crm-system-sub001/internal/services/auth"
	"github.com/inanin-user/crm-system-sub001/internal/services/member"
	"github.com/inanin-user/crm-system-sub001/internal/services/payment"
	"github.com/inanin-user/crm-system-sub001/internal/services/qrcode"
	"github.com/inanin-user/crm-system-sub001/internal/services/redemption"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers every route group on the application.
func SetupRoutes(app *fiber.App) {
	accountRepo := repositories.NewAccountRepository(repositories.DB, repositories.CacheService)
	qrRepo := repositories.NewQRCodeRepository(repositories.DB, repositories.CacheService)
	counterRepo := repositories.NewCounterRepository(repositories.DB)
	ledgerRepo := repositories.NewLedgerRepository(repositories.DB)
	recordRepo := repositories.NewFinancialRecordRepository(repositories.DB)
	trainerRepo := repositories.NewTrainerRepository(repositories.DB)

	authService := auth.NewService(accountRepo)
	memberService := member.NewService(accountRepo)
	qrService := qrcode.NewService(qrRepo, counterRepo)
	redemptionService := redemption.NewService(ledgerRepo, qrService, repositories.CacheService)
	paymentService := payment.NewService(memberService, recordRepo)

	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService, paymentService)
	qrHandler := handlers.NewQRCodeHandler(qrService)
	redemptionHandler := handlers.NewRedemptionHandler(redemptionService)
	trainerHandler := handlers.NewTrainerHandler(trainerRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	// Public
	api.Post("/login", authHandler.Login)
	api.Post("/register", memberHandler.Register)
	api.Post("/refresh", authHandler.RefreshToken)

	// Authenticated
	protected := api.Group("/", authMiddleware.Handler)
	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Get("/me", memberHandler.Me)

	protected.Get("/qrcode/current-number", qrHandler.CurrentNumber)
	protected.Post("/qrcode/scan", qrHandler.Scan)

	protected.Post("/redeem", middleware.RequireMemberRole, redemptionHandler.Redeem)
	protected.Get("/transactions", middleware.RequireMemberRole, redemptionHandler.MyTransactions)

	// Trainer profile
	trainers := protected.Group("/trainers")
	trainers.Get("/profile", trainerHandler.Profile)
	trainers.Put("/profile", trainerHandler.UpdateProfile)

	// Admin
	admin := protected.Group("/admin", middleware.RequireAdmin)
	admin.Post("/qrcodes", qrHandler.Generate)
	admin.Get("/qrcodes", qrHandler.List)
	admin.Delete("/qrcodes/:number", qrHandler.Deactivate)

	admin.Get("/members", memberHandler.List)
	admin.Get("/members/:id", memberHandler.Get)
	admin.Post("/members/:id/renew", memberHandler.Renew)
	admin.Delete("/members/:id", memberHandler.Deactivate)

	admin.Get("/transactions", redemptionHandler.AllTransactions)
	admin.Get("/trainers", trainerHandler.List)
}
