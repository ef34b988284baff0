// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"fmt"
	"log"
	"time"

	"usercenter/internal/config"
	"usercenter/internal/handlers"
	"usercenter/internal/middleware"
	"usercenter/internal/models"
	"usercenter/internal/repositories"
	"usercenter/internal/services/ledger"
	"usercenter/internal/services/settlement"
	"usercenter/internal/services/verification"
	"usercenter/internal/services/withdrawal"
	"usercenter/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/shopspring/decimal"
)

// Dependencies are the infrastructure pieces the routes are built on.
type Dependencies struct {
	Config  *config.Config
	Store   repositories.Store
	Cache   repositories.CacheRepository
	Metrics settlement.MetricsCollector
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, deps Dependencies) error {
	cfg := deps.Config

	minWithdrawal, err := decimal.NewFromString(cfg.MinWithdrawal)
	if err != nil || !minWithdrawal.IsPositive() {
		return fmt.Errorf("invalid MIN_WITHDRAWAL %q", cfg.MinWithdrawal)
	}

	// Initialize services in correct order
	verificationService := verification.NewService(deps.Store)
	ledgerService := ledger.NewService(deps.Store, deps.Cache)
	withdrawalService := withdrawal.NewService(deps.Store, deps.Cache)
	settlementService := settlement.NewService(
		deps.Store,
		verificationService,
		ledgerService,
		withdrawalService,
		settlement.Config{
			MinWithdrawal: minWithdrawal,
			LockTimeout:   cfg.LockTimeout,
		},
		deps.Metrics,
	)

	// Initialize handlers
	walletHandler := handlers.NewWalletHandler(settlementService, ledgerService)
	certificationHandler := handlers.NewCertificationHandler(verificationService)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": deps.Store,
		"redis":    deps.Cache,
	})

	// health check at the root
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	// Create middleware instance
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	protected := api.Group("", authMiddleware.Handler)

	setupWalletRoutes(protected, walletHandler, cfg.WithdrawRate)
	setupCertificationRoutes(protected, certificationHandler)

	log.Printf("Routes ready: minimum withdrawal %s, lock timeout %s", minWithdrawal.StringFixed(settlement.AmountScale), cfg.LockTimeout)
	return nil
}

func setupWalletRoutes(router fiber.Router, h *handlers.WalletHandler, withdrawRate int) {
	wallet := router.Group("/wallet")
	wallet.Get("/balance", middleware.HasPermission(models.PermissionWalletRead), h.GetBalance)
	wallet.Get("/withdrawals", middleware.HasPermission(models.PermissionWalletRead), h.ListWithdrawals)
	wallet.Post("/withdraw",
		middleware.HasPermission(models.PermissionWalletWrite),
		withdrawLimiter(withdrawRate),
		h.Withdraw,
	)
}

func setupCertificationRoutes(router fiber.Router, h *handlers.CertificationHandler) {
	certification := router.Group("/certification", middleware.HasPermission(models.PermissionProfile))
	certification.Get("/", h.Get)
	certification.Post("/", h.Submit)
}

// withdrawLimiter caps withdraw attempts per user per minute.
func withdrawLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID, ok := c.Locals("userID").(uint); ok {
				return fmt.Sprintf("withdraw:%d", userID)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "too many withdrawal attempts, try again later")
		},
	})
}
