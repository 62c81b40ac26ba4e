package recommender

import "strings"

// Medical bonus thresholds, carried over from the catalog tuning.
const (
	diabetesBonusMaxCarbsG      = 15
	diabetesBonusMinFiberG      = 5
	hypertensionBonusMaxSodium  = 200
	hypertensionBonusMinPotass  = 300
	obesityBonusMaxCalories     = 200
	obesityBonusMinProteinG     = 15
	medicalBonusFloor           = -0.5
	medicalBonusCeil            = 0.5
)

// PreparationScore rates how ready a food is to serve as a standalone
// meal item. Prepared dishes dominate, single ingredients trail far
// behind and raw staples are nearly excluded, which keeps the ranking
// from surfacing uncooked rice or plain flour as a meal.
func PreparationScore(food FoodItem, kw *KeywordSet) float64 {
	if kw == nil {
		kw = DefaultKeywords()
	}
	switch food.FoodStatus {
	case StatusPrepared:
		if containsAny(strings.ToLower(food.Name), kw.Raw) {
			return 0.3
		}
		return 1.0
	case StatusSingleIngredient:
		return 0.2
	case StatusRawIngredient:
		return 0.05
	default:
		return 0.2
	}
}

// MedicalBonus is a soft adjustment in [-0.5, 0.5] rewarding foods
// aligned with the condition and penalizing known aggravators. It is
// zero for users without a condition; the hard filter has already
// removed outright unsuitable foods.
func MedicalBonus(food FoodItem, condition MedicalCondition, kw *KeywordSet) float64 {
	if condition == ConditionNone || condition == "" {
		return 0
	}
	if kw == nil {
		kw = DefaultKeywords()
	}
	name := strings.ToLower(food.Name)
	bonus := 0.0

	switch condition {
	case ConditionDiabetes:
		if food.Carbs != nil && *food.Carbs < diabetesBonusMaxCarbsG {
			bonus += 0.3
		}
		if food.Fiber != nil && *food.Fiber > diabetesBonusMinFiberG {
			bonus += 0.2
		}
		if containsAny(name, kw.Sweet) {
			bonus -= 0.3
		}
	case ConditionHypertension:
		if food.SodiumMg != nil && *food.SodiumMg < hypertensionBonusMaxSodium {
			bonus += 0.3
		}
		if food.PotassiumMg != nil && *food.PotassiumMg > hypertensionBonusMinPotass {
			bonus += 0.2
		}
		if containsAny(name, kw.Salty) {
			bonus -= 0.3
		}
	case ConditionObesity:
		if food.Calories != nil && *food.Calories < obesityBonusMaxCalories {
			bonus += 0.3
		}
		if food.Protein != nil && *food.Protein > obesityBonusMinProteinG {
			bonus += 0.2
		}
		if containsAny(name, kw.Fried) {
			bonus -= 0.3
		}
	}

	return clamp(bonus, medicalBonusFloor, medicalBonusCeil)
}

// Fuse blends the four signals under the given weights into one
// ranking value in [0,1]. The medical bonus may be negative, so the
// clamp matters.
func Fuse(w FusionWeights, nutrition, cf, medical, preparation float64) float64 {
	total := nutrition*w.Nutrition +
		cf*w.CF +
		medical*w.Medical +
		preparation*w.Preparation
	return clamp(total, 0, 1)
}
