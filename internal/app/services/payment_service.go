package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appError "github.com/likehq/giftcards-core/internal/app/errors"
	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/likehq/giftcards-core/internal/app/pkg"
	"github.com/likehq/giftcards-core/internal/infrastructures"
	"github.com/shopspring/decimal"
)

type PaymentService struct {
	client          *infrastructures.RazorpayClient
	validator       *infrastructures.Validator
	giftCardService *GiftCardService
}

func NewPaymentService(client *infrastructures.RazorpayClient, validator *infrastructures.Validator, giftCardService *GiftCardService) *PaymentService {
	return &PaymentService{
		client:          client,
		validator:       validator,
		giftCardService: giftCardService,
	}
}

// CreateOrder creates a Razorpay order for the requested amount. Razorpay
// expects the amount in minor units (paise for INR).
func (s *PaymentService) CreateOrder(ctx context.Context, req *models.PaymentOrderCreateRequest) (*models.RazorpayOrder, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, appError.NewBadRequestError("Amount must be greater than zero")
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	payload := map[string]interface{}{
		"amount":   req.Amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency": currency,
		"receipt":  fmt.Sprintf("LIKE_%d", time.Now().UnixMilli()),
		"notes": map[string]string{
			"email": req.Email,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to build payment order request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.GetFullURL("/orders"), bytes.NewReader(body))
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to build payment order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", s.client.GetAuthHeader())

	resp, err := s.client.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, appError.NewServiceUnavailableError(err, "Payment provider unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, appError.NewInternalServerError(
			fmt.Errorf("razorpay order create returned status %d: %s", resp.StatusCode, respBody),
			"Failed to create payment order",
		)
	}

	var order models.RazorpayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to decode payment order response")
	}

	return &order, nil
}

// VerifyAndCreateGiftCard mints a gift card from a payment confirmation. The
// signature check is the only authorization gate: no card is created without
// it, and a mismatch leaves the store untouched.
func (s *PaymentService) VerifyAndCreateGiftCard(ctx context.Context, req *models.PaymentVerifyRequest) (*models.GiftCard, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if !pkg.VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.client.Config.KeySecret) {
		return nil, appError.NewBadRequestError("Invalid payment signature")
	}

	return s.giftCardService.Create(ctx, &req.GiftCardCreateRequest)
}
