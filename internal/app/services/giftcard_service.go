package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	appError "github.com/likehq/giftcards-core/internal/app/errors"
	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/likehq/giftcards-core/internal/app/pkg"
	"github.com/likehq/giftcards-core/internal/app/repositories"
	"github.com/likehq/giftcards-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

// maxCodeAttempts bounds the generate-insert loop. With 60 bits of entropy
// per code, exhausting this is an operational anomaly worth alerting on,
// not something to silently absorb.
const maxCodeAttempts = 10

type GiftCardService struct {
	store     repositories.GiftCardStore
	validator *infrastructures.Validator
	notifier  Notifier

	// generateCode is swappable so tests can force collisions.
	generateCode func() string
}

func NewGiftCardService(store repositories.GiftCardStore, validator *infrastructures.Validator, notifier Notifier) *GiftCardService {
	return &GiftCardService{
		store:        store,
		validator:    validator,
		notifier:     notifier,
		generateCode: pkg.GenerateGiftCardCode,
	}
}

func (s *GiftCardService) Create(ctx context.Context, req *models.GiftCardCreateRequest) (*models.GiftCard, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, appError.NewBadRequestError("Amount must be greater than zero")
	}

	denomType := req.DenomType
	if denomType == "" {
		denomType = models.DenomTypeFixed
	}

	card := &models.GiftCard{
		ID:             uuid.New(),
		SenderEmail:    req.SenderEmail,
		RecipientEmail: req.RecipientEmail,
		Recipient:      req.Recipient,
		Message:        req.Message,
		Amount:         req.Amount,
		Currency:       req.Currency,
		CurrencySymbol: req.CurrencySymbol,
		DenomType:      denomType,
		Status:         models.GiftCardStatusActive,
		ExpiresAt:      req.ExpiresAt,
	}
	if denomType == models.DenomTypeMulti {
		balance := req.Amount
		card.Balance = &balance
	}

	inserted := false
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		card.Code = s.generateCode()

		err := s.store.InsertUnique(ctx, card)
		if err == nil {
			inserted = true
			break
		}
		if errors.Is(err, repositories.ErrCodeCollision) {
			continue
		}
		return nil, appError.NewServiceUnavailableError(err, "Failed to create gift card")
	}
	if !inserted {
		logrus.WithField("attempts", maxCodeAttempts).Error("gift card code generation exhausted its retry budget")
		return nil, appError.NewAppError(http.StatusInternalServerError, "Failed to allocate a unique gift card code")
	}

	s.notifier.NotifyGiftCardIssued(card)

	return card, nil
}

func (s *GiftCardService) Redeem(ctx context.Context, code string, req *models.GiftCardRedeemRequest) (*models.GiftCard, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	details := &models.RedemptionDetails{
		WithdrawalMethod: req.WithdrawalMethod,
		Email:            req.Email,
		UpiID:            req.UpiID,
		AccountNumber:    req.AccountNumber,
		IfscCode:         req.IfscCode,
		AccountHolder:    req.AccountHolder,
	}

	card, err := s.store.CompareAndTransition(ctx, code,
		models.GiftCardStatusActive, models.GiftCardStatusRedeemed,
		func(c *models.GiftCard) {
			now := time.Now()
			c.RedeemedAt = &now
			c.RedemptionDetails = details
		})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, appError.NewNotFoundError("Gift card not found")
		case errors.Is(err, repositories.ErrConflict):
			// Already redeemed or expired. Terminal, never retried.
			return nil, appError.NewConflictError("Gift card is not active")
		default:
			return nil, appError.NewServiceUnavailableError(err, "Failed to redeem gift card")
		}
	}

	s.notifier.NotifyRedemptionRequested(card)

	return card, nil
}

func (s *GiftCardService) GetByCode(ctx context.Context, code string) (*models.GiftCard, error) {
	card, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appError.NewNotFoundError("Gift card not found")
		}
		return nil, appError.NewServiceUnavailableError(err, "Failed to get gift card")
	}
	return card, nil
}

func (s *GiftCardService) GetGiftCards(ctx context.Context, pagination *models.PaginationRequest, status *models.GiftCardStatus) (*models.Pagination[[]models.GiftCard], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	totalItems, err := s.store.Count(ctx, status)
	if err != nil {
		return nil, appError.NewServiceUnavailableError(err, "Failed to count gift cards")
	}

	cards, err := s.store.List(ctx, pagination.Limit, offset, status)
	if err != nil {
		return nil, appError.NewServiceUnavailableError(err, "Failed to list gift cards")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.GiftCard]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      cards,
	}, nil
}

func (s *GiftCardService) ExpireOverdue(ctx context.Context) (int64, error) {
	expired, err := s.store.ExpireOverdue(ctx, time.Now())
	if err != nil {
		return 0, appError.NewServiceUnavailableError(err, "Failed to expire gift cards")
	}
	if expired > 0 {
		logrus.WithField("count", expired).Info("expired overdue gift cards")
	}
	return expired, nil
}
