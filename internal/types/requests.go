package types

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Name           string  `json:"name" binding:"required,max=100"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	Age            int     `json:"age" binding:"required,gte=13,lte=120"`
	Gender         string  `json:"gender" binding:"required,oneof=M F"`
	WeightKg       float64 `json:"weight_kg" binding:"required,gt=0"`
	HeightCm       float64 `json:"height_cm" binding:"required,gt=0"`
	ActivityLevel  string  `json:"activity_level" binding:"required,oneof=sedentary light moderate active very_active"`
	MedicalHistory string  `json:"medical_history"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest updates the mutable physiology fields. Nil
// means leave unchanged.
type UpdateProfileRequest struct {
	Name           *string  `json:"name,omitempty"`
	Age            *int     `json:"age,omitempty" binding:"omitempty,gte=13,lte=120"`
	WeightKg       *float64 `json:"weight_kg,omitempty" binding:"omitempty,gt=0"`
	HeightCm       *float64 `json:"height_cm,omitempty" binding:"omitempty,gt=0"`
	ActivityLevel  *string  `json:"activity_level,omitempty" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	MedicalHistory *string  `json:"medical_history,omitempty"`
}

// CreateGoalRequest starts a new diet goal. Any currently active goal
// is abandoned in the same transaction.
type CreateGoalRequest struct {
	TargetWeightKg   float64   `json:"target_weight_kg" binding:"required,gt=0"`
	TargetDate       time.Time `json:"target_date" binding:"required"`
	MedicalCondition string    `json:"medical_condition" binding:"omitempty,oneof=none diabetes hypertension obesity"`
}

// UpdatePreferencesRequest replaces the user's active preference set.
type UpdatePreferencesRequest struct {
	Preferences []string `json:"preferences" binding:"required,dive,oneof=vegetarian halal dairy_free nut_free seafood_free egg_free soy_free"`
}

// RecommendationFeedbackRequest records consumption and an optional
// rating for one recommendation.
type RecommendationFeedbackRequest struct {
	IsConsumed bool `json:"is_consumed"`
	Rating     *int `json:"rating,omitempty" binding:"omitempty,gte=1,lte=5"`
}

// LogWeightRequest records a weigh-in for today.
type LogWeightRequest struct {
	WeightKg float64 `json:"weight_kg" binding:"required,gt=0"`
	Notes    string  `json:"notes"`
}

// WeightEntryResponse is one logged weigh-in.
type WeightEntryResponse struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
	Notes    string  `json:"notes,omitempty"`
}

// WeightProgressResponse summarizes the recent weigh-ins against the
// active goal. Target fields are nil without an active goal.
type WeightProgressResponse struct {
	StartingWeightKg float64               `json:"starting_weight_kg"`
	CurrentWeightKg  float64               `json:"current_weight_kg"`
	TargetWeightKg   *float64              `json:"target_weight_kg,omitempty"`
	TargetDate       *string               `json:"target_date,omitempty"`
	Entries          []WeightEntryResponse `json:"entries"`
}

// FoodResponse is the catalog entry shape exposed by the API.
type FoodResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	FoodGroup  string    `json:"food_group"`
	FoodStatus string    `json:"food_status"`
	Calories   *float64  `json:"calories"`
	Protein    *float64  `json:"protein"`
	Carbs      *float64  `json:"carbohydrates"`
	Fat        *float64  `json:"fat"`
	ImageURL   string    `json:"image_url,omitempty"`
}

// MenuItemResponse is one recommended item in the daily menu.
type MenuItemResponse struct {
	RecommendationID uuid.UUID    `json:"recommendation_id"`
	Food             FoodResponse `json:"food"`
	Score            float64      `json:"score"`
	MealSlot         string       `json:"meal_slot"`
	IsConsumed       bool         `json:"is_consumed"`
	Rating           *int         `json:"rating,omitempty"`
}

// DailyMenuResponse groups the day's recommendations by meal slot.
type DailyMenuResponse struct {
	Date          string             `json:"date"`
	DailyCalories float64            `json:"daily_calories"`
	ProteinGrams  float64            `json:"protein_grams"`
	CarbGrams     float64            `json:"carb_grams"`
	FatGrams      float64            `json:"fat_grams"`
	Breakfast     []MenuItemResponse `json:"breakfast"`
	Lunch         []MenuItemResponse `json:"lunch"`
	Dinner        []MenuItemResponse `json:"dinner"`
	Snacks        []MenuItemResponse `json:"snacks"`
}
