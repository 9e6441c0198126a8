package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// CheckoutOrder is the gateway's order handle returned at checkout initiation.
type CheckoutOrder struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentGateway creates orders with the external provider and verifies the
// signature the provider hands back to the client after payment. Constructed
// once in main and injected into the payment controller.
type PaymentGateway interface {
	CreateOrder(amountPaise int, currency, receipt string) (*CheckoutOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// RazorpayClient talks to the Razorpay orders API.
type RazorpayClient struct {
	client  *resty.Client
	keyID   string
	secret  string
	baseURL string
}

func NewRazorpayClient(keyID, secret, baseURL string) *RazorpayClient {
	return &RazorpayClient{
		client:  resty.New(),
		keyID:   keyID,
		secret:  secret,
		baseURL: baseURL,
	}
}

func (r *RazorpayClient) CreateOrder(amountPaise int, currency, receipt string) (*CheckoutOrder, error) {
	var order CheckoutOrder

	resp, err := r.client.R().
		SetBasicAuth(r.keyID, r.secret).
		SetBody(map[string]interface{}{
			"amount":   amountPaise,
			"currency": currency,
			"receipt":  receipt,
		}).
		SetResult(&order).
		Post(r.baseURL + "/orders")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway order creation failed: %s", resp.String())
	}

	return &order, nil
}

func (r *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	expected := SignCheckout(orderID, paymentID, r.secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignCheckout computes the hex HMAC-SHA256 over "orderId|paymentId" that the
// gateway attaches to a completed payment.
func SignCheckout(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
