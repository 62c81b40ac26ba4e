package models

import (
	"time"

	"github.com/google/uuid"
)

// EngineWeights stores one user's adapted fusion weights so the
// recommendation blend survives restarts. Rows are created lazily on
// the first weight update.
type EngineWeights struct {
	UserID    uuid.UUID `gorm:"type:uuid;primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CFWeight          float64 `gorm:"not null" json:"cf_weight"`
	NutritionWeight   float64 `gorm:"not null" json:"nutrition_weight"`
	PreparationWeight float64 `gorm:"not null" json:"preparation_weight"`
	MedicalWeight     float64 `gorm:"not null" json:"medical_weight"`
}

func (EngineWeights) TableName() string {
	return "engine_weights"
}
