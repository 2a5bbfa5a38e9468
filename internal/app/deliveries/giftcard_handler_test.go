package deliveries

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/likehq/giftcards-core/internal/app/middlewares"
	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/likehq/giftcards-core/internal/app/repositories"
	"github.com/likehq/giftcards-core/internal/app/services"
	"github.com/likehq/giftcards-core/internal/infrastructures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopNotifier struct{}

func (noopNotifier) NotifyGiftCardIssued(*models.GiftCard)      {}
func (noopNotifier) NotifyRedemptionRequested(*models.GiftCard) {}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(key string, limit middlewares.Rate) (bool, middlewares.RateLimitInfo) {
	return true, middlewares.RateLimitInfo{Limit: limit.Requests, Remaining: limit.Requests, Reset: time.Now().Add(limit.Window)}
}

func (allowAllLimiter) Reset(string) error { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.GiftCard{}))

	store := repositories.NewGormGiftCardStore(db)
	service := services.NewGiftCardService(store, infrastructures.NewValidator(), noopNotifier{})
	handler := NewGiftCardHandler(service, middlewares.NewRateLimitMiddleware(allowAllLimiter{}))

	app := fiber.New()
	handler.RegisterRoutes(app)
	return app
}

func doJSON[T any](t *testing.T, app *fiber.App, method, target string, payload any) (int, models.WebResponse[T]) {
	t.Helper()

	var reqBody *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, reqBody)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body models.WebResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestCreateAndFetchGiftCard(t *testing.T) {
	app := newTestApp(t)

	status, created := doJSON[models.GiftCard](t, app, http.MethodPost, "/giftcards", map[string]any{
		"sender_email":    "a@x.com",
		"amount":          50,
		"currency":        "INR",
		"currency_symbol": "₹",
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, created.Success)
	assert.Equal(t, models.GiftCardStatusActive, created.Data.Status)

	// Lookup is case-insensitive
	status, fetched := doJSON[models.GiftCard](t, app, http.MethodGet, "/giftcards/"+strings.ToLower(created.Data.Code), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.Data.Code, fetched.Data.Code)
}

func TestCreateGiftCardValidationError(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON[any](t, app, http.MethodPost, "/giftcards", map[string]any{
		"amount":   50,
		"currency": "INR",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
}

func TestRedeemGiftCardFlow(t *testing.T) {
	app := newTestApp(t)

	_, created := doJSON[models.GiftCard](t, app, http.MethodPost, "/giftcards", map[string]any{
		"sender_email": "a@x.com",
		"amount":       50,
		"currency":     "INR",
	})

	payload := map[string]any{
		"withdrawal_method": "UPI",
		"email":             "payout@x.com",
	}

	status, redeemed := doJSON[models.GiftCard](t, app, http.MethodPost, "/giftcards/"+created.Data.Code+"/redeem", payload)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.GiftCardStatusRedeemed, redeemed.Data.Status)

	// A second attempt is a business-terminal conflict
	status, conflict := doJSON[any](t, app, http.MethodPost, "/giftcards/"+created.Data.Code+"/redeem", payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, conflict.Success)
}

func TestRedeemUnknownGiftCard(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON[any](t, app, http.MethodPost, "/giftcards/LIKE-ZZZZ-ZZZZ-ZZZZ/redeem", map[string]any{
		"withdrawal_method": "UPI",
		"email":             "payout@x.com",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Success)
}

func TestListGiftCardsByStatus(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 3; i++ {
		status, _ := doJSON[models.GiftCard](t, app, http.MethodPost, "/giftcards", map[string]any{
			"sender_email": fmt.Sprintf("sender%d@x.com", i),
			"amount":       10 + i,
			"currency":     "INR",
		})
		require.Equal(t, http.StatusOK, status)
	}

	status, page := doJSON[models.Pagination[[]models.GiftCard]](t, app, http.MethodGet, "/giftcards?status=ACTIVE&limit=2", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, page.Data.TotalItems)
	assert.Len(t, page.Data.Items, 2)
	assert.True(t, page.Data.HasNext)
}
