package models

import (
	"time"

	"github.com/google/uuid"
)

// Volunteer is a registered volunteer. Signups survive restarts; volunteer
// state is never held in process memory.
type Volunteer struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;not null;uniqueIndex:idx_volunteers_email"`
	Phone        string    `gorm:"column:phone;not null"`
	Interests    *string   `gorm:"column:interests"`
	RegisteredAt time.Time `gorm:"column:registered_at;autoCreateTime"`
}
