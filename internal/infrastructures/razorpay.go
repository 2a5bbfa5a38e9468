package infrastructures

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

type RazorpayClient struct {
	HTTPClient *http.Client
	Config     *RazorpayConfig
	BaseURL    string
	AuthHeader string
}

// NewRazorpayClient creates a new Razorpay HTTP client with configuration
func NewRazorpayClient() *RazorpayClient {
	config := &RazorpayConfig{
		KeyID:     Config.RazorpayConfig.KeyID,
		KeySecret: Config.RazorpayConfig.KeySecret,
	}

	// Razorpay uses basic auth with key_id as username and key_secret as password
	authString := base64.StdEncoding.EncodeToString([]byte(config.KeyID + ":" + config.KeySecret))
	authHeader := "Basic " + authString

	return &RazorpayClient{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Config:     config,
		BaseURL:    "https://api.razorpay.com/v1",
		AuthHeader: authHeader,
	}
}

// GetAuthHeader returns the properly formatted authorization header
func (c *RazorpayClient) GetAuthHeader() string {
	return c.AuthHeader
}

// GetFullURL constructs the full URL for an endpoint
func (c *RazorpayClient) GetFullURL(endpoint string) string {
	return fmt.Sprintf("%s%s", c.BaseURL, endpoint)
}
