package volunteers

import (
	"context"

	"gorm.io/gorm"

	"github.com/sevasetu/donations-backend/pkg/db/models"
)

// Repository handles volunteer persistence.
type Repository interface {
	Create(ctx context.Context, volunteer *models.Volunteer) error
	List(ctx context.Context) ([]models.Volunteer, error)
	FindByEmail(ctx context.Context, email string) (*models.Volunteer, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a volunteer repository bound to the database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, volunteer *models.Volunteer) error {
	return r.db.WithContext(ctx).Create(volunteer).Error
}

func (r *repository) List(ctx context.Context) ([]models.Volunteer, error) {
	var volunteers []models.Volunteer
	if err := r.db.WithContext(ctx).
		Order("registered_at DESC").
		Find(&volunteers).Error; err != nil {
		return nil, err
	}
	return volunteers, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&volunteer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &volunteer, nil
}
