package checkoutControllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const defaultSessionsURL = "https://api.stripe.com/v1/checkout/sessions"

type CheckoutInput struct {
	TotalPrice string `json:"totalPrice" binding:"required"`
}

// checkoutSessionResponse is the slice of the processor's response we use.
type checkoutSessionResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type checkoutConfig struct {
	secretKey  string
	apiURL     string
	successURL string
	cancelURL  string
}

func getCheckoutConfig() (checkoutConfig, error) {
	cfg := checkoutConfig{
		secretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		apiURL:     os.Getenv("STRIPE_API_URL"),
		successURL: os.Getenv("CHECKOUT_SUCCESS_URL"),
		cancelURL:  os.Getenv("CHECKOUT_CANCEL_URL"),
	}
	if cfg.apiURL == "" {
		cfg.apiURL = defaultSessionsURL
	}
	if cfg.secretKey == "" || cfg.successURL == "" || cfg.cancelURL == "" {
		return checkoutConfig{}, fmt.Errorf("checkout configuration missing")
	}
	return cfg, nil
}

// CreateCheckoutSession calls the payment processor and returns the new
// session's ID, which the storefront redirects to.
func CreateCheckoutSession(amountMinor int64) (string, error) {
	cfg, err := getCheckoutConfig()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][product_data][name]", "Total")
	form.Set("line_items[0][price_data][unit_amount]", fmt.Sprintf("%d", amountMinor))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", cfg.successURL)
	form.Set("cancel_url", cfg.cancelURL)

	req, err := http.NewRequest("POST", cfg.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+cfg.secretKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach payment processor: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var session checkoutSessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("failed to parse processor response: %v", err)
	}
	if session.Error != nil {
		return "", fmt.Errorf("processor error: %s", session.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("processor API error (%d): %s", resp.StatusCode, string(body))
	}
	if session.ID == "" {
		return "", fmt.Errorf("processor returned empty session ID")
	}
	return session.ID, nil
}

// POST /api/auth/create-checkout-session
func CreateCheckoutSessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		total, err := decimal.NewFromString(input.TotalPrice)
		if err != nil || total.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total price"})
			return
		}
		amountMinor := total.Mul(decimal.NewFromInt(100)).IntPart()

		sessionID, err := CreateCheckoutSession(amountMinor)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": sessionID})
	}
}
