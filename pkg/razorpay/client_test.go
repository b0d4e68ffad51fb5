package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/sevasetu/donations-backend/pkg/config"
	"github.com/sevasetu/donations-backend/pkg/logger"
)

func testClient(t *testing.T, webhookSecret string) *Client {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := NewClient(context.Background(), config.RazorpayConfig{
		KeyID:         "rzp_test_key",
		KeySecret:     "key_secret",
		WebhookSecret: webhookSecret,
	}, logg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func signHex(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestNewClientValidation(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	if _, err := NewClient(context.Background(), config.RazorpayConfig{KeySecret: "s"}, logg); err == nil {
		t.Fatal("expected error without key id")
	}
	if _, err := NewClient(context.Background(), config.RazorpayConfig{KeyID: "k"}, logg); err == nil {
		t.Fatal("expected error without key secret")
	}
	if _, err := NewClient(context.Background(), config.RazorpayConfig{KeyID: "k", KeySecret: "s"}, nil); err == nil {
		t.Fatal("expected error without logger")
	}
}

func TestVerifyPaymentSignature(t *testing.T) {
	client := testClient(t, "")

	orderID := "order_abc123"
	paymentID := "pay_def456"
	signature := signHex("key_secret", []byte(orderID+"|"+paymentID))

	if !client.VerifyPaymentSignature(orderID, paymentID, signature) {
		t.Fatal("valid signature rejected")
	}

	// Any single-byte mutation must flip the outcome.
	mutated := []byte(signature)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}
	if client.VerifyPaymentSignature(orderID, paymentID, string(mutated)) {
		t.Fatal("mutated signature accepted")
	}

	if client.VerifyPaymentSignature("", paymentID, signature) {
		t.Fatal("empty order id accepted")
	}
	if client.VerifyPaymentSignature(orderID, paymentID, "") {
		t.Fatal("empty signature accepted")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`)

	withSecret := testClient(t, "whsec")
	signature := signHex("whsec", body)
	if !withSecret.VerifyWebhookSignature(body, signature) {
		t.Fatal("valid webhook signature rejected")
	}
	if withSecret.VerifyWebhookSignature(body, signHex("other", body)) {
		t.Fatal("signature from wrong secret accepted")
	}

	// No configured secret means every request is rejected, fail closed.
	withoutSecret := testClient(t, "")
	if withoutSecret.VerifyWebhookSignature(body, signature) {
		t.Fatal("webhook accepted without configured secret")
	}
}

func TestNewReceipt(t *testing.T) {
	client := testClient(t, "")

	receipt := client.NewReceipt("+91 99999-99999")
	if !strings.HasPrefix(receipt, "receipt_") {
		t.Fatalf("unexpected receipt %q", receipt)
	}
	if !strings.HasSuffix(receipt, "_9999999999") {
		t.Fatalf("phone digits not extracted: %q", receipt)
	}

	anon := client.NewReceipt("not-a-phone")
	if !strings.HasSuffix(anon, "_anon") {
		t.Fatalf("expected anon suffix, got %q", anon)
	}
}

func TestOrderFromResponse(t *testing.T) {
	order := orderFromResponse(map[string]any{
		"id":       "order_1",
		"amount":   float64(50000),
		"currency": "INR",
		"receipt":  "receipt_1_9",
		"status":   "created",
	})
	if order.ID != "order_1" || order.AmountPaise != 50000 || order.Currency != "INR" {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestPaymentFromResponse(t *testing.T) {
	payment := paymentFromResponse(map[string]any{
		"id":       "pay_1",
		"order_id": "order_1",
		"amount":   float64(50000),
		"currency": "INR",
		"status":   "captured",
		"method":   "upi",
		"captured": true,
	})
	if payment.ID != "pay_1" || !payment.Captured || payment.AmountPaise != 50000 {
		t.Fatalf("unexpected payment %+v", payment)
	}
}
