package donations

import (
	"github.com/shopspring/decimal"

	"github.com/sevasetu/donations-backend/pkg/enums"
)

// DonorDetails carries the donor metadata attached to an order.
type DonorDetails struct {
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone"`
	DonationType      enums.DonationType `json:"donation_type"`
	IsDedicated       bool               `json:"is_dedicated"`
	DedicationMessage string             `json:"dedication_message"`
}

// CreateOrderInput is the request to open a donation order. Amount is in
// major units (rupees).
type CreateOrderInput struct {
	Amount decimal.Decimal
	Donor  DonorDetails
}

// CreateOrderResult is returned to the browser so it can launch checkout.
type CreateOrderResult struct {
	OrderID     string         `json:"order_id"`
	AmountPaise int64          `json:"amount"`
	Currency    enums.Currency `json:"currency"`
	KeyID       string         `json:"key_id"`
}

// VerifyInput is the browser-supplied payment confirmation, forwarded
// verbatim from the hosted checkout.
type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

// VerifyResult confirms a settled donation back to the caller.
type VerifyResult struct {
	OrderID        string `json:"order_id"`
	PaymentID      string `json:"payment_id"`
	AlreadySettled bool   `json:"already_settled"`
}

// PaymentSummary is the normalized fetch-through view of one processor
// payment, amount converted back to major units.
type PaymentSummary struct {
	PaymentID string          `json:"payment_id"`
	OrderID   string          `json:"order_id"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Method    string          `json:"method"`
	Captured  bool            `json:"captured"`
	CreatedAt int64           `json:"created_at"`
}
