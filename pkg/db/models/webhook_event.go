package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WebhookEvent is the audit record for every authenticated processor event,
// including types the service does not act on.
type WebhookEvent struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventID    *string         `gorm:"column:event_id;uniqueIndex:idx_webhook_events_event_id"`
	EventType  string          `gorm:"column:event_type;not null"`
	PaymentID  *string         `gorm:"column:payment_id"`
	OrderID    *string         `gorm:"column:order_id"`
	Payload    json.RawMessage `gorm:"column:payload;type:jsonb"`
	ReceivedAt time.Time       `gorm:"column:received_at;autoCreateTime"`
}
