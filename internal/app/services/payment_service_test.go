package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appError "github.com/likehq/giftcards-core/internal/app/errors"
	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/likehq/giftcards-core/internal/app/repositories"
	"github.com/likehq/giftcards-core/internal/infrastructures"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeySecret = "KfOmHp6IAJ70ij5opQ0HnC3"

func signTestPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestPaymentService(t *testing.T, baseURL string) (*PaymentService, repositories.GiftCardStore) {
	t.Helper()

	client := &infrastructures.RazorpayClient{
		HTTPClient: http.DefaultClient,
		Config:     &infrastructures.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: testKeySecret},
		BaseURL:    baseURL,
		AuthHeader: "Basic cnpwX3Rlc3Rfa2V5OnNlY3JldA==",
	}

	store := repositories.NewGormGiftCardStore(newServiceTestDB(t))
	validator := infrastructures.NewValidator()
	giftCardService := NewGiftCardService(store, validator, &fakeNotifier{})

	return NewPaymentService(client, validator, giftCardService), store
}

func validVerifyRequest() *models.PaymentVerifyRequest {
	return &models.PaymentVerifyRequest{
		RazorpayOrderID:   "order_abc123",
		RazorpayPaymentID: "pay_xyz789",
		RazorpaySignature: signTestPayment("order_abc123", "pay_xyz789"),
		GiftCardCreateRequest: models.GiftCardCreateRequest{
			SenderEmail:    "a@x.com",
			Amount:         decimal.NewFromInt(50),
			Currency:       "INR",
			CurrencySymbol: "₹",
		},
	}
}

func TestVerifyAndCreateGiftCard(t *testing.T) {
	service, store := newTestPaymentService(t, "http://razorpay.invalid")

	card, err := service.VerifyAndCreateGiftCard(context.Background(), validVerifyRequest())
	require.NoError(t, err)

	assert.Equal(t, models.GiftCardStatusActive, card.Status)

	stored, err := store.FindByCode(context.Background(), card.Code)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.SenderEmail)
}

func TestVerifyAndCreateGiftCardRejectsForgedSignature(t *testing.T) {
	service, store := newTestPaymentService(t, "http://razorpay.invalid")
	ctx := context.Background()

	req := validVerifyRequest()
	req.RazorpaySignature = strings.Repeat("ab", 32)

	_, err := service.VerifyAndCreateGiftCard(ctx, req)
	var appErr *appError.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)

	// No card may exist after a failed verification
	total, err := store.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestVerifyAndCreateGiftCardRequiresPaymentFields(t *testing.T) {
	service, _ := newTestPaymentService(t, "http://razorpay.invalid")

	req := validVerifyRequest()
	req.RazorpayOrderID = ""

	_, err := service.VerifyAndCreateGiftCard(context.Background(), req)
	var appErr *appError.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestCreateOrder(t *testing.T) {
	var captured struct {
		Amount   int64             `json:"amount"`
		Currency string            `json:"currency"`
		Receipt  string            `json:"receipt"`
		Notes    map[string]string `json:"notes"`
	}
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(models.RazorpayOrder{
			ID:       "order_abc123",
			Amount:   captured.Amount,
			Currency: captured.Currency,
			Receipt:  captured.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	service, _ := newTestPaymentService(t, srv.URL)

	order, err := service.CreateOrder(context.Background(), &models.PaymentOrderCreateRequest{
		Amount: decimal.NewFromInt(50),
		Email:  "a@x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "order_abc123", order.ID)
	assert.Equal(t, int64(5000), captured.Amount, "amount must be sent in paise")
	assert.Equal(t, "INR", captured.Currency)
	assert.True(t, strings.HasPrefix(captured.Receipt, "LIKE_"))
	assert.Equal(t, "a@x.com", captured.Notes["email"])
	assert.True(t, strings.HasPrefix(authHeader, "Basic "))
}

func TestCreateOrderRejectsMissingAmount(t *testing.T) {
	service, _ := newTestPaymentService(t, "http://razorpay.invalid")

	_, err := service.CreateOrder(context.Background(), &models.PaymentOrderCreateRequest{
		Email: "a@x.com",
	})
	var appErr *appError.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestCreateOrderSurfacesProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer srv.Close()

	service, _ := newTestPaymentService(t, srv.URL)

	_, err := service.CreateOrder(context.Background(), &models.PaymentOrderCreateRequest{
		Amount: decimal.NewFromInt(50),
	})
	var appErr *appError.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
}
