package models

import (
	"time"

	"github.com/google/uuid"
)

// WeightProgress is one weigh-in. At most one entry exists per user and
// day; logging again the same day overwrites it.
type WeightProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_date" json:"user_id"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_progress_user_date" json:"date"`
	WeightKg float64   `gorm:"not null" json:"weight_kg"`
	Notes    string    `gorm:"type:text" json:"notes,omitempty"`
}

func (WeightProgress) TableName() string {
	return "weight_progress"
}
