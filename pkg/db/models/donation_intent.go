package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sevasetu/donations-backend/pkg/enums"
)

// DonationIntent is the durable record of one attempted donation. The
// processor owns the payment itself; this row is the local system of record
// for whether the donation settled.
type DonationIntent struct {
	ID                uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           string                  `gorm:"column:order_id;not null;uniqueIndex:idx_donation_intents_order_id"`
	Receipt           string                  `gorm:"column:receipt;not null"`
	AmountPaise       int64                   `gorm:"column:amount_paise;not null"`
	Currency          enums.Currency          `gorm:"column:currency;not null;default:'INR'"`
	DonorName         string                  `gorm:"column:donor_name;not null"`
	DonorEmail        string                  `gorm:"column:donor_email;not null"`
	DonorPhone        string                  `gorm:"column:donor_phone;not null"`
	DonationType      enums.DonationType      `gorm:"column:donation_type;not null;default:'onetime'"`
	IsDedicated       bool                    `gorm:"column:is_dedicated;not null;default:false"`
	DedicationMessage *string                 `gorm:"column:dedication_message"`
	Status            enums.IntentStatus      `gorm:"column:status;not null;default:'created'"`
	SettledVia        *enums.SettlementSource `gorm:"column:settled_via"`
	PaymentID         *string                 `gorm:"column:payment_id"`
	FailureReason     *string                 `gorm:"column:failure_reason"`
	SettledAt         *time.Time              `gorm:"column:settled_at"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
