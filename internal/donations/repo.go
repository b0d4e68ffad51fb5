package donations

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sevasetu/donations-backend/pkg/db/models"
	"github.com/sevasetu/donations-backend/pkg/enums"
)

// Repository handles donation intent persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, intent *models.DonationIntent) error
	FindByOrderID(ctx context.Context, orderID string) (*models.DonationIntent, error)
	// MarkSettled applies created -> settled for the given order. Returns
	// false with a nil error when the row was not in created state, so the
	// caller can distinguish an idempotent replay from a first application.
	MarkSettled(ctx context.Context, orderID, paymentID string, via enums.SettlementSource) (bool, error)
	// MarkFailed applies created -> failed. Same return convention.
	MarkFailed(ctx context.Context, orderID string, paymentID, reason *string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a donation repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, intent *models.DonationIntent) error {
	return r.db.WithContext(ctx).Create(intent).Error
}

func (r *repository) FindByOrderID(ctx context.Context, orderID string) (*models.DonationIntent, error) {
	var intent models.DonationIntent
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&intent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}

func (r *repository) MarkSettled(ctx context.Context, orderID, paymentID string, via enums.SettlementSource) (bool, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.DonationIntent{}).
		Where("order_id = ? AND status = ?", orderID, enums.IntentStatusCreated).
		Updates(map[string]any{
			"status":      enums.IntentStatusSettled,
			"settled_via": via,
			"payment_id":  paymentID,
			"settled_at":  now,
			"updated_at":  now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) MarkFailed(ctx context.Context, orderID string, paymentID, reason *string) (bool, error) {
	updates := map[string]any{
		"status":     enums.IntentStatusFailed,
		"updated_at": time.Now().UTC(),
	}
	if paymentID != nil {
		updates["payment_id"] = *paymentID
	}
	if reason != nil {
		updates["failure_reason"] = *reason
	}
	res := r.db.WithContext(ctx).
		Model(&models.DonationIntent{}).
		Where("order_id = ? AND status = ?", orderID, enums.IntentStatusCreated).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
