//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/likehq/giftcards-core/internal/app/deliveries"
	"github.com/likehq/giftcards-core/internal/app/middlewares"
	"github.com/likehq/giftcards-core/internal/app/repositories"
	"github.com/likehq/giftcards-core/internal/app/services"
	"github.com/likehq/giftcards-core/internal/infrastructures"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	infrastructures.NewRazorpayClient,
	infrastructures.NewMailDialer,
	wire.Value("like"),
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
)

// Repository providers
var repositorySet = wire.NewSet(
	wire.Bind(new(repositories.GiftCardStore), new(*repositories.GormGiftCardStore)),
	repositories.NewGormGiftCardStore,
)

// Service providers
var serviceSet = wire.NewSet(
	wire.Bind(new(services.Notifier), new(*services.NotificationService)),
	services.NewNotificationService,
	services.NewGiftCardService,
	services.NewPaymentService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewGiftCardHandler,
	deliveries.NewPaymentHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
