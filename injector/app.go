package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/likehq/giftcards-core/internal/app/deliveries"
	"github.com/likehq/giftcards-core/internal/app/middlewares"
)

// Application represents the main application container for giftcards-core
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	GiftCardHandler     *deliveries.GiftCardHandler
	PaymentHandler      *deliveries.PaymentHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	// Apply global rate limit for public API
	router.Use(app.RateLimitMiddleware.LimitByIP(middlewares.PublicAPILimit))

	// Register all handlers
	app.HealthHandler.RegisterRoutes(router)
	app.GiftCardHandler.RegisterRoutes(router)
	app.PaymentHandler.RegisterRoutes(router)
}
