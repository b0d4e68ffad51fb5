package razorpaywebhook

import (
	"encoding/json"

	pkgerrors "github.com/sevasetu/donations-backend/pkg/errors"
)

// Event types dispatched by the handler. Everything else is recorded and
// acknowledged without touching donation state.
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
)

// Event is a decoded processor notification. ID comes from the
// x-razorpay-event-id header, not the body, and may be empty on older
// accounts.
type Event struct {
	ID        string          `json:"-"`
	Entity    string          `json:"entity"`
	Type      string          `json:"event"`
	Contains  []string        `json:"contains"`
	Payload   EventPayload    `json:"payload"`
	CreatedAt int64           `json:"created_at"`
	Raw       json.RawMessage `json:"-"`
}

// EventPayload wraps the entity envelope the processor nests payment data in.
type EventPayload struct {
	Payment struct {
		Entity PaymentEntity `json:"entity"`
	} `json:"payment"`
}

// PaymentEntity is the subset of the payment object the receiver acts on.
type PaymentEntity struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	AmountPaise      int64  `json:"amount"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	Method           string `json:"method"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}

// ParseEvent decodes a raw webhook body. The raw bytes are retained for the
// audit trail.
func ParseEvent(body []byte, eventID string) (*Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode webhook event")
	}
	if event.Type == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "webhook event type missing")
	}
	event.ID = eventID
	event.Raw = json.RawMessage(body)
	return &event, nil
}
