package razorpay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	rzpsdk "github.com/razorpay/razorpay-go"
	rzperrors "github.com/razorpay/razorpay-go/errors"
	"github.com/razorpay/razorpay-go/utils"

	"github.com/sevasetu/donations-backend/pkg/config"
	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
	"github.com/sevasetu/donations-backend/pkg/logger"
)

var (
	errKeyIDRequired     = errors.New("razorpay key id is required")
	errKeySecretRequired = errors.New("razorpay key secret is required")
	errLoggerRequired    = errors.New("razorpay logger is required")
)

// Client exposes Razorpay primitives with centralized auth, logging,
// signature helpers, and error mapping.
type Client struct {
	sdk           *rzpsdk.Client
	keyID         string
	keySecret     string
	webhookSecret string
	logger        *logger.Logger
}

// OrderCreateParams describes one payment order to open with the processor.
type OrderCreateParams struct {
	AmountPaise int64
	Currency    string
	Receipt     string
	Notes       map[string]any
}

// Order is the normalized subset of the processor's order entity.
type Order struct {
	ID          string
	AmountPaise int64
	Currency    string
	Receipt     string
	Status      string
}

// Payment is the normalized subset of the processor's payment entity.
type Payment struct {
	ID          string
	OrderID     string
	AmountPaise int64
	Currency    string
	Status      string
	Method      string
	Email       string
	Contact     string
	Captured    bool
	CreatedAt   int64
}

// NewClient initializes the Razorpay wrapper and validates the credentials.
// The webhook secret may be empty; the webhook endpoint fails closed without it.
func NewClient(ctx context.Context, cfg config.RazorpayConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	keyID := strings.TrimSpace(cfg.KeyID)
	if keyID == "" {
		return nil, errKeyIDRequired
	}
	keySecret := strings.TrimSpace(cfg.KeySecret)
	if keySecret == "" {
		return nil, errKeySecretRequired
	}

	sdk := rzpsdk.NewClient(keyID, keySecret)
	if cfg.RequestTimeout > 0 {
		sdk.SetTimeout(int16(cfg.RequestTimeout / time.Second))
	}

	c := &Client{
		sdk:           sdk,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: strings.TrimSpace(cfg.WebhookSecret),
		logger:        logg,
	}

	logg.Info(ctx, "razorpay client initialized")
	return c, nil
}

// KeyID returns the public key id the browser checkout needs.
func (c *Client) KeyID() string {
	if c == nil {
		return ""
	}
	return c.keyID
}

// WebhookSecret returns the configured webhook signing secret, empty when unset.
func (c *Client) WebhookSecret() string {
	if c == nil {
		return ""
	}
	return c.webhookSecret
}

// NewReceipt builds a receipt reference unique per attempt. The processor uses
// it for its own idempotency, so collisions across attempts must be avoided.
func (c *Client) NewReceipt(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		digits = "anon"
	}
	return fmt.Sprintf("receipt_%d_%s", time.Now().UnixMilli(), digits)
}

// CreateOrder opens a payment order with the processor.
func (c *Client) CreateOrder(ctx context.Context, params OrderCreateParams) (*Order, error) {
	data := map[string]any{
		"amount":   params.AmountPaise,
		"currency": params.Currency,
		"receipt":  params.Receipt,
	}
	if len(params.Notes) > 0 {
		data["notes"] = params.Notes
	}

	c.log(ctx, "request", "create_order", map[string]any{
		"amount_paise": params.AmountPaise,
		"currency":     params.Currency,
		"receipt":      params.Receipt,
	})

	resp, err := c.sdk.Order.Create(data, nil)
	if err != nil {
		c.log(ctx, "error", "create_order", map[string]any{"error": err.Error()})
		return nil, c.mapRazorpayError(err, "create order")
	}

	order := orderFromResponse(resp)
	c.log(ctx, "response", "create_order", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return order, nil
}

// FetchPayment retrieves one payment from the processor.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	c.log(ctx, "request", "fetch_payment", map[string]any{"payment_id": paymentID})

	resp, err := c.sdk.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		c.log(ctx, "error", "fetch_payment", map[string]any{"error": err.Error()})
		return nil, c.mapRazorpayError(err, "fetch payment")
	}

	payment := paymentFromResponse(resp)
	c.log(ctx, "response", "fetch_payment", map[string]any{
		"payment_id": payment.ID,
		"status":     payment.Status,
	})
	return payment, nil
}

// VerifyPaymentSignature checks the browser-supplied confirmation signature
// against HMAC-SHA256(keySecret, orderID + "|" + paymentID). Constant time.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if c == nil || orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	params := map[string]any{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, c.keySecret)
}

// VerifyWebhookSignature checks the signature header against
// HMAC-SHA256(webhookSecret, rawBody). Fails closed when no secret is set.
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	if c == nil || c.webhookSecret == "" || signature == "" {
		return false
	}
	return utils.VerifyWebhookSignature(string(body), signature, c.webhookSecret)
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = c.redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("razorpay %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("razorpay %s", phase))
	}
}

func (c *Client) redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"secret", "signature", "token", "email", "phone", "contact", "card"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}

func (c *Client) mapRazorpayError(err error, op string) error {
	if err == nil {
		return nil
	}
	var badRequest *rzperrors.BadRequestError
	if errors.As(err, &badRequest) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("razorpay %s failed", op))
	}
	var gateway *rzperrors.GatewayError
	if errors.As(err, &gateway) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("razorpay %s failed", op))
	}
	var server *rzperrors.ServerError
	if errors.As(err, &server) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("razorpay %s failed", op))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("razorpay %s failed", op))
}

func orderFromResponse(resp map[string]any) *Order {
	return &Order{
		ID:          mapString(resp, "id"),
		AmountPaise: mapInt64(resp, "amount"),
		Currency:    mapString(resp, "currency"),
		Receipt:     mapString(resp, "receipt"),
		Status:      mapString(resp, "status"),
	}
}

func paymentFromResponse(resp map[string]any) *Payment {
	return &Payment{
		ID:          mapString(resp, "id"),
		OrderID:     mapString(resp, "order_id"),
		AmountPaise: mapInt64(resp, "amount"),
		Currency:    mapString(resp, "currency"),
		Status:      mapString(resp, "status"),
		Method:      mapString(resp, "method"),
		Email:       mapString(resp, "email"),
		Contact:     mapString(resp, "contact"),
		Captured:    mapBool(resp, "captured"),
		CreatedAt:   mapInt64(resp, "created_at"),
	}
}

func mapString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func mapInt64(m map[string]any, key string) int64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func mapBool(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}
