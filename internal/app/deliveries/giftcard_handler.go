package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/likehq/giftcards-core/internal/app/middlewares"
	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/likehq/giftcards-core/internal/app/pkg"
	"github.com/likehq/giftcards-core/internal/app/services"
)

type GiftCardHandler struct {
	giftCardService     *services.GiftCardService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewGiftCardHandler(giftCardService *services.GiftCardService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *GiftCardHandler {
	return &GiftCardHandler{
		giftCardService:     giftCardService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *GiftCardHandler) RegisterRoutes(router fiber.Router) {
	giftCardGroup := router.Group("/giftcards")

	giftCardGroup.Get("/", h.GetGiftCards)
	giftCardGroup.Get("/:code", h.GetGiftCard)
	giftCardGroup.Post("/", h.CreateGiftCard)
	giftCardGroup.Post("/expire", h.ExpireGiftCards)

	// Redemption gets a stricter limit: it is the code-guessing surface
	giftCardGroup.Post("/:code/redeem", h.rateLimitMiddleware.LimitByIP(middlewares.RedeemLimit), h.RedeemGiftCard)
}

func (h *GiftCardHandler) CreateGiftCard(c *fiber.Ctx) error {
	var req models.GiftCardCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	card, err := h.giftCardService.Create(c.Context(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, card)
}

func (h *GiftCardHandler) GetGiftCard(c *fiber.Ctx) error {
	code := c.Params("code")

	card, err := h.giftCardService.GetByCode(c.Context(), code)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, card)
}

func (h *GiftCardHandler) GetGiftCards(c *fiber.Ctx) error {
	pageStr := c.Query("page", "1")
	limitStr := c.Query("limit", "10")
	statusStr := c.Query("status")

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = 10
	}

	var status *models.GiftCardStatus
	if statusStr != "" {
		cardStatus := models.GiftCardStatus(statusStr)
		status = &cardStatus
	}

	pagination := &models.PaginationRequest{Page: page, Limit: limit}

	cards, err := h.giftCardService.GetGiftCards(c.Context(), pagination, status)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, cards)
}

func (h *GiftCardHandler) RedeemGiftCard(c *fiber.Ctx) error {
	code := c.Params("code")

	var req models.GiftCardRedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	card, err := h.giftCardService.Redeem(c.Context(), code, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, card)
}

func (h *GiftCardHandler) ExpireGiftCards(c *fiber.Ctx) error {
	expired, err := h.giftCardService.ExpireOverdue(c.Context())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	response := map[string]interface{}{
		"expired": expired,
	}

	return pkg.SuccessResponse(c, response)
}
