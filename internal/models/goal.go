package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal lifecycle statuses. Exactly one goal per user may be active.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusAbandoned = "abandoned"
)

// Medical conditions attached to a goal.
const (
	ConditionNone         = "none"
	ConditionDiabetes     = "diabetes"
	ConditionHypertension = "hypertension"
	ConditionObesity      = "obesity"
)

// ValidCondition reports whether the condition is a known value.
func ValidCondition(c string) bool {
	switch c {
	case ConditionNone, ConditionDiabetes, ConditionHypertension, ConditionObesity:
		return true
	}
	return false
}

type DietGoal struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"-"`

	TargetWeightKg   float64   `gorm:"not null" json:"target_weight_kg"`
	TargetDate       time.Time `gorm:"not null" json:"target_date"`
	MedicalCondition string    `gorm:"size:20;not null;default:'none'" json:"medical_condition"`
	Status           string    `gorm:"size:20;not null;default:'active';index:idx_goal_user_status" json:"status"`
}

func (DietGoal) TableName() string {
	return "diet_goals"
}
