package models

import (
	"time"

	"github.com/google/uuid"
)

// Preference types accepted by the API.
const (
	PrefVegetarian  = "vegetarian"
	PrefHalal       = "halal"
	PrefDairyFree   = "dairy_free"
	PrefNutFree     = "nut_free"
	PrefSeafoodFree = "seafood_free"
	PrefEggFree     = "egg_free"
	PrefSoyFree     = "soy_free"
)

// ValidPreference reports whether the type is a known constraint.
func ValidPreference(p string) bool {
	switch p {
	case PrefVegetarian, PrefHalal, PrefDairyFree, PrefNutFree, PrefSeafoodFree, PrefEggFree, PrefSoyFree:
		return true
	}
	return false
}

// FoodPreference is one dietary or allergy constraint. Updates replace
// the user's whole active set, so stale rows are deactivated rather
// than deleted to keep the history.
type FoodPreference struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_pref_user_active" json:"user_id"`
	PreferenceType string    `gorm:"size:30;not null" json:"preference_type"`
	IsActive       bool      `gorm:"not null;default:true;index:idx_pref_user_active" json:"is_active"`
}

func (FoodPreference) TableName() string {
	return "food_preferences"
}
