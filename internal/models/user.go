package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity levels accepted on registration and profile update.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// ValidActivityLevel reports whether the level is one of the five
// tiers.
func ValidActivityLevel(level string) bool {
	switch level {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`

	Age            int     `gorm:"not null;check:age >= 13 AND age <= 120" json:"age"`
	Gender         string  `gorm:"type:varchar(1);not null" json:"gender"` // M or F
	WeightKg       float64 `gorm:"not null" json:"weight_kg"`
	HeightCm       float64 `gorm:"not null" json:"height_cm"`
	ActivityLevel  string  `gorm:"not null;default:'sedentary'" json:"activity_level"`
	MedicalHistory string  `gorm:"type:text" json:"medical_history"`
	AvatarURL      string  `gorm:"size:255" json:"avatar_url"`
}

// BMI returns weight over squared height in meters, 0 when height is
// unset.
func (u User) BMI() float64 {
	if u.HeightCm <= 0 {
		return 0
	}
	h := u.HeightCm / 100
	return u.WeightKg / (h * h)
}
