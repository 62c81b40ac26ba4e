package recommender

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Gender follows the catalog's single-letter encoding.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// ActivityLevel is one of five ordinal tiers.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// activityMultipliers maps each tier to its TDEE factor.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// activityOrdinals maps each tier to its position in [0,1] for the
// collaborative-filtering feature vector.
var activityOrdinals = map[ActivityLevel]float64{
	ActivitySedentary:  0,
	ActivityLight:      0.25,
	ActivityModerate:   0.5,
	ActivityActive:     0.75,
	ActivityVeryActive: 1,
}

// MedicalCondition is the condition attached to an active diet goal.
type MedicalCondition string

const (
	ConditionNone         MedicalCondition = "none"
	ConditionDiabetes     MedicalCondition = "diabetes"
	ConditionHypertension MedicalCondition = "hypertension"
	ConditionObesity      MedicalCondition = "obesity"
)

// MealSlot is the unit of menu diversification.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// MealSlots lists the four valid slots in menu order.
var MealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// ValidSlot reports whether s is one of the four meal slots.
func ValidSlot(s MealSlot) bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner, SlotSnack:
		return true
	}
	return false
}

// FoodStatus describes preparation readiness. The catalog carries the
// Indonesian labels used by the upstream dataset.
type FoodStatus string

const (
	StatusRawIngredient    FoodStatus = "Bahan Dasar"
	StatusSingleIngredient FoodStatus = "Tunggal"
	StatusPrepared         FoodStatus = "Olahan"
)

// Food groups as labeled in the catalog.
const (
	GroupEnergySource   = "Bahan makanan sumber energi"
	GroupFatSource      = "Bahan makanan sumber lemak"
	GroupAnimalProtein  = "Bahan makanan sumber protein hewani"
	GroupPlantProtein   = "Bahan makanan sumber protein nabati"
	GroupVitaminMineral = "Bahan makanan sumber vitamin dan mineral"
	GroupPreparedDish   = "Makanan jadi"
	GroupDrink          = "Minuman"
	GroupSpice          = "Rempah dan bumbu"
)

// Preference is a named dietary or allergy constraint.
type Preference string

const (
	PrefVegetarian  Preference = "vegetarian"
	PrefHalal       Preference = "halal"
	PrefDairyFree   Preference = "dairy_free"
	PrefNutFree     Preference = "nut_free"
	PrefSeafoodFree Preference = "seafood_free"
	PrefEggFree     Preference = "egg_free"
	PrefSoyFree     Preference = "soy_free"
)

// UserProfile is the physiology snapshot used for a single
// recommendation call. BMI is derived, never stored.
type UserProfile struct {
	ID            uuid.UUID
	Age           int
	WeightKg      float64
	HeightCm      float64
	Gender        Gender
	ActivityLevel ActivityLevel
	MedicalNote   string
}

// BMI returns weight / height² with height in meters.
func (u UserProfile) BMI() float64 {
	if u.HeightCm <= 0 {
		return 0
	}
	h := u.HeightCm / 100
	return u.WeightKg / (h * h)
}

// DietGoal is the active weight-management goal for a user.
type DietGoal struct {
	UserID           uuid.UUID
	TargetWeightKg   float64
	TargetDate       time.Time
	MedicalCondition MedicalCondition
}

// FoodItem is a read-only catalog row. Nutrient fields are per serving
// and may be absent; nil means unknown.
type FoodItem struct {
	ID       uuid.UUID
	Name     string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Fiber    *float64
	SodiumMg *float64
	// PotassiumMg, CalciumMg are in milligrams, IronMg and ZincMg too.
	PotassiumMg *float64
	CalciumMg   *float64
	IronMg      *float64
	ZincMg      *float64
	VitaminCMg  *float64

	IsVegetarian    bool
	IsHalal         bool
	ContainsDairy   bool
	ContainsNuts    bool
	ContainsSeafood bool
	ContainsEggs    bool
	ContainsSoy     bool

	FoodGroup  string
	FoodStatus FoodStatus
	// SlotHint is the optional catalog-supplied meal slot; empty when
	// the catalog has no opinion.
	SlotHint MealSlot
}

// HasEssentialMacros reports whether all four macros needed for
// nutrition scoring are present.
func (f FoodItem) HasEssentialMacros() bool {
	return f.Calories != nil && f.Protein != nil && f.Carbs != nil && f.Fat != nil
}

// FeedbackRecord is one persisted recommendation outcome. Rating 0
// means the user never rated the item.
type FeedbackRecord struct {
	UserID     uuid.UUID
	FoodID     uuid.UUID
	Date       time.Time
	Consumed   bool
	Rating     int
	FeedbackAt time.Time
}

// RankedCandidate carries one scored food through the pipeline. It is
// engine-internal and discarded after selection; the caller persists
// only the selected subset.
type RankedCandidate struct {
	Food             FoodItem
	NutritionScore   float64
	CFScore          float64
	MedicalBonus     float64
	PreparationScore float64
	TotalScore       float64
	Slot             MealSlot
}

// NeighborProfile pairs a user's physiology with the condition of
// their active goal, for the collaborative-filtering index.
type NeighborProfile struct {
	User      UserProfile
	Condition MedicalCondition
}

// UserSource provides the population needed to build the
// collaborative-filtering index.
type UserSource interface {
	Population(ctx context.Context) ([]NeighborProfile, error)
}

// FoodSource widens the candidate pool when a slot is underfilled.
type FoodSource interface {
	FoodsByCalorieBand(ctx context.Context, minCal, maxCal float64) ([]FoodItem, error)
}

// FeedbackSource provides rating history for CF profile-building,
// recency checks and weight adaptation.
type FeedbackSource interface {
	AllFeedback(ctx context.Context) ([]FeedbackRecord, error)
	UserFeedback(ctx context.Context, userID uuid.UUID) ([]FeedbackRecord, error)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
