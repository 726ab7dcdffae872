package main

import (
	"strings"

	"mutabakat-backend/internal/admin"
	"mutabakat-backend/internal/auth"
	"mutabakat-backend/internal/config"
	"mutabakat-backend/internal/database"
	"mutabakat-backend/internal/income"
	"mutabakat-backend/internal/logger"
	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/reconciliation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// .env varsa yükle; yoksa ortam değişkenleriyle devam
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg)
	database.Init(cfg, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("Beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den normalize et
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes: şube ve şube admini yönetimi
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	adminRoutes.Post("/branches", admin.CreateBranchHandler())
	adminRoutes.Get("/branches", admin.ListBranchesHandler())
	adminRoutes.Get("/branches/:id", admin.GetBranchHandler())
	adminRoutes.Put("/branches/:id", admin.UpdateBranchHandler())
	adminRoutes.Delete("/branches/:id", admin.DeleteBranchHandler())
	adminRoutes.Post("/branches/:id/admin", admin.CreateBranchAdminHandler())
	adminRoutes.Get("/branches/:id/admins", admin.ListBranchAdminsHandler())

	// Mutabakat raporları
	protected.Get("/reconciliation/dashboard", reconciliation.DashboardHandler())
	protected.Get("/reconciliation/stock-valuation", reconciliation.StockValuationHandler())
	protected.Get("/reconciliation/vouchers", reconciliation.VoucherReportHandler())
	protected.Get("/periods/editable", reconciliation.EditablePeriodsHandler())

	// Günlük gelir girişleri
	protected.Post("/daily-incomes", income.CreateDailyIncomeHandler())
	protected.Get("/daily-incomes", income.ListDailyIncomeHandler())

	log.Info().Str("port", cfg.HTTPPort).Msg("Server çalışıyor")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("Server durdu")
	}
}
