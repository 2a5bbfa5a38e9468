package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/likehq/giftcards-core/internal/app/middlewares"
	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/likehq/giftcards-core/internal/app/pkg"
	"github.com/likehq/giftcards-core/internal/app/services"
)

type PaymentHandler struct {
	paymentService      *services.PaymentService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewPaymentHandler(paymentService *services.PaymentService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *PaymentHandler {
	return &PaymentHandler{
		paymentService:      paymentService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentGroup := router.Group("/payments")

	paymentGroup.Post("/orders", h.CreateOrder)
	paymentGroup.Post("/verify", h.rateLimitMiddleware.LimitByIP(middlewares.VerifyLimit), h.VerifyPayment)
}

func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var req models.PaymentOrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	order, err := h.paymentService.CreateOrder(c.Context(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, order)
}

func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req models.PaymentVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	card, err := h.paymentService.VerifyAndCreateGiftCard(c.Context(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, card)
}
