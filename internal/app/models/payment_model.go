package models

import (
	"github.com/shopspring/decimal"
)

type PaymentOrderCreateRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"omitempty,max=8"`
	Email    string          `json:"email" validate:"omitempty,email"`
}

// RazorpayOrder is the subset of Razorpay's order object this service consumes.
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentVerifyRequest carries the provider's payment confirmation plus the
// gift card to mint once the signature checks out.
type PaymentVerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	GiftCardCreateRequest
}
