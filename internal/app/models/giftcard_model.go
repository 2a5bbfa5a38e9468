package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DenomType string

const (
	DenomTypeFixed DenomType = "FIXED"
	DenomTypeMulti DenomType = "MULTI"
)

type GiftCardStatus string

const (
	GiftCardStatusActive   GiftCardStatus = "ACTIVE"
	GiftCardStatusRedeemed GiftCardStatus = "REDEEMED"
	GiftCardStatusExpired  GiftCardStatus = "EXPIRED"
)

// RedemptionDetails records the payout request captured at redemption time.
// It is written exactly once, together with the ACTIVE -> REDEEMED transition.
type RedemptionDetails struct {
	WithdrawalMethod string  `json:"withdrawal_method"`
	Email            string  `json:"email"`
	UpiID            *string `json:"upi_id,omitempty"`
	AccountNumber    *string `json:"account_number,omitempty"`
	IfscCode         *string `json:"ifsc_code,omitempty"`
	AccountHolder    *string `json:"account_holder,omitempty"`
}

type GiftCard struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Code              string             `gorm:"uniqueIndex;not null" json:"code"`
	SenderEmail       string             `gorm:"not null" json:"sender_email"`
	RecipientEmail    *string            `json:"recipient_email,omitempty"`
	Recipient         *string            `json:"recipient,omitempty"`
	Message           *string            `json:"message,omitempty"`
	Amount            decimal.Decimal    `gorm:"type:decimal(18,2)" json:"amount"`
	Currency          string             `gorm:"not null" json:"currency"`
	CurrencySymbol    string             `json:"currency_symbol"`
	DenomType         DenomType          `gorm:"not null;default:'FIXED'" json:"denom_type"`
	Balance           *decimal.Decimal   `gorm:"type:decimal(18,2)" json:"balance,omitempty"`
	Status            GiftCardStatus     `gorm:"index;not null;default:'ACTIVE'" json:"status"`
	ExpiresAt         *time.Time         `gorm:"index" json:"expires_at,omitempty"`
	RedeemedAt        *time.Time         `json:"redeemed_at,omitempty"`
	RedemptionDetails *RedemptionDetails `gorm:"serializer:json" json:"redemption_details,omitempty"`
	CreatedAt         time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (GiftCard) TableName() string {
	return "gift_cards"
}

type GiftCardCreateRequest struct {
	SenderEmail    string          `json:"sender_email" validate:"required,email"`
	RecipientEmail *string         `json:"recipient_email,omitempty" validate:"omitempty,email"`
	Recipient      *string         `json:"recipient,omitempty" validate:"omitempty,max=255"`
	Message        *string         `json:"message,omitempty" validate:"omitempty,max=1000"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency" validate:"required,max=8"`
	CurrencySymbol string          `json:"currency_symbol" validate:"omitempty,max=8"`
	DenomType      DenomType       `json:"denom_type" validate:"omitempty,oneof=FIXED MULTI"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
}

type GiftCardRedeemRequest struct {
	WithdrawalMethod string  `json:"withdrawal_method" validate:"required,oneof=UPI BANK_TRANSFER"`
	Email            string  `json:"email" validate:"required,email"`
	UpiID            *string `json:"upi_id,omitempty" validate:"omitempty,max=255"`
	AccountNumber    *string `json:"account_number,omitempty" validate:"omitempty,max=34"`
	IfscCode         *string `json:"ifsc_code,omitempty" validate:"omitempty,max=11"`
	AccountHolder    *string `json:"account_holder,omitempty" validate:"omitempty,max=255"`
}
