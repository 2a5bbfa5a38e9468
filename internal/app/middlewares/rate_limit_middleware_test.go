package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allow    bool
	lastKey  string
	lastRate Rate
}

func (s *stubLimiter) Allow(key string, limit Rate) (bool, RateLimitInfo) {
	s.lastKey = key
	s.lastRate = limit
	return s.allow, RateLimitInfo{
		Limit:     limit.Requests,
		Remaining: limit.Requests - 1,
		Reset:     time.Now().Add(limit.Window),
	}
}

func (s *stubLimiter) Reset(key string) error { return nil }

func newLimitedApp(limiter RateLimiter, limit Rate) *fiber.App {
	app := fiber.New()
	m := NewRateLimitMiddleware(limiter)
	app.Get("/ping", m.LimitByIP(limit), func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestLimitByIPAllows(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	app := newLimitedApp(limiter, RedeemLimit)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ip:203.0.113.7", limiter.lastKey)
	assert.Equal(t, RedeemLimit, limiter.lastRate)
	assert.Equal(t, "10", resp.Header.Get("X-RateLimit-Limit"))
}

func TestLimitByIPBlocks(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	app := newLimitedApp(limiter, PublicAPILimit)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var body models.WebResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "Rate limit exceeded")
}
