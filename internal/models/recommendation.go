package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal slots as exposed by the API and stored with recommendations.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
)

// Recommendation is one persisted menu entry plus its feedback state.
// Generating a new daily menu replaces the rows for that date.
type Recommendation struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_rec_user_date" json:"user_id"`
	FoodID uuid.UUID `gorm:"type:uuid;not null" json:"food_id"`
	Food   *Food     `gorm:"foreignKey:FoodID" json:"food,omitempty"`

	Score              float64   `gorm:"not null" json:"score"`
	NutritionScore     float64   `json:"nutrition_score"`
	CFScore            float64   `json:"cf_score"`
	MedicalBonus       float64   `json:"medical_bonus"`
	PreparationScore   float64   `json:"preparation_score"`
	RecommendationDate time.Time `gorm:"type:date;not null;index:idx_rec_user_date" json:"recommendation_date"`
	MealSlot           string    `gorm:"size:20;not null" json:"meal_slot"`
	FoodStatus         string    `gorm:"size:20" json:"food_status"`

	IsConsumed   bool       `gorm:"not null;default:false" json:"is_consumed"`
	Rating       *int       `gorm:"check:rating >= 1 AND rating <= 5" json:"rating,omitempty"`
	FeedbackDate *time.Time `json:"feedback_date,omitempty"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
