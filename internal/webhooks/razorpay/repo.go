package razorpaywebhook

import (
	"context"

	"gorm.io/gorm"

	"github.com/sevasetu/donations-backend/pkg/db"
	"github.com/sevasetu/donations-backend/pkg/db/models"
)

// Repository is the webhook audit trail. Every delivery is recorded, whether
// or not it changes donation state.
type Repository interface {
	Record(ctx context.Context, event *models.WebhookEvent) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a webhook event repository bound to the database.
func NewRepository(gdb *gorm.DB) Repository {
	return &repository{db: gdb}
}

func (r *repository) Record(ctx context.Context, event *models.WebhookEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		// Redelivery of an event id already in the trail is not an error.
		if db.IsUniqueViolation(err, "idx_webhook_events_event_id") {
			return nil
		}
		return err
	}
	return nil
}
