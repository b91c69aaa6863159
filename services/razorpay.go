// services/razorpay.go
package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"tournament-portal/utils"
)

// RazorpayOrder is the subset of the provider's order object we use.
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// OrderCreator lets tests stand in for the payment provider.
type OrderCreator interface {
	CreateOrder(amountPaise int64, receipt string) (*RazorpayOrder, error)
}

type RazorpayClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Client    *http.Client
}

func NewRazorpayClientFromEnv() *RazorpayClient {
	baseURL := os.Getenv("RAZORPAY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}
	return &RazorpayClient{
		BaseURL:   baseURL,
		KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		Client:    utils.HTTPClient,
	}
}

// CreateOrder calls POST /v1/orders. Amount is already in paise.
func (c *RazorpayClient) CreateOrder(amountPaise int64, receipt string) (*RazorpayOrder, error) {
	url := fmt.Sprintf("%s/v1/orders", c.BaseURL)

	reqBody := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("Razorpay /v1/orders returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("order creation failed: %d", resp.StatusCode)
	}

	var out RazorpayOrder
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// VerifyPaymentSignature checks the checkout callback signature:
// HMAC-SHA256(order_id + "|" + payment_id) under the key secret.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
