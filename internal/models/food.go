package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Food preparation statuses as labeled in the Indonesian catalog.
const (
	FoodStatusRaw      = "Bahan Dasar"
	FoodStatusSingle   = "Tunggal"
	FoodStatusPrepared = "Olahan"
)

// Food is one catalog entry. Nutrient values are per serving;
// pointers distinguish "unknown" from zero, since the catalog import
// leaves gaps.
type Food struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name      string `gorm:"size:255;not null;index" json:"name"`
	FoodGroup string `gorm:"size:100;index" json:"food_group"`
	// FoodStatus is one of the three preparation labels.
	FoodStatus string `gorm:"size:20;index" json:"food_status"`
	// MealSlot is an optional curator-assigned slot hint.
	MealSlot string `gorm:"size:20" json:"meal_slot,omitempty"`

	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `gorm:"column:carbohydrates" json:"carbohydrates"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `gorm:"column:dietary_fiber" json:"dietary_fiber"`

	SodiumMg    *float64 `gorm:"column:sodium" json:"sodium"`
	PotassiumMg *float64 `gorm:"column:potassium" json:"potassium"`
	CalciumMg   *float64 `gorm:"column:calcium" json:"calcium"`
	IronMg      *float64 `gorm:"column:iron" json:"iron"`
	ZincMg      *float64 `gorm:"column:zinc" json:"zinc"`
	VitaminCMg  *float64 `gorm:"column:vitamin_c" json:"vitamin_c"`

	IsVegetarian    bool `gorm:"default:false" json:"is_vegetarian"`
	IsHalal         bool `gorm:"default:true" json:"is_halal"`
	ContainsDairy   bool `gorm:"default:false" json:"contains_dairy"`
	ContainsNuts    bool `gorm:"default:false" json:"contains_nuts"`
	ContainsSeafood bool `gorm:"default:false" json:"contains_seafood"`
	ContainsEggs    bool `gorm:"default:false" json:"contains_eggs"`
	ContainsSoy     bool `gorm:"default:false" json:"contains_soy"`

	ImageURL string `gorm:"size:255" json:"image_url,omitempty"`
}

func (Food) TableName() string {
	return "foods"
}
