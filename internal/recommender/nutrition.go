package recommender

import (
	"errors"
	"strings"
)

// ErrDataGap marks a food that is missing an essential macro. Such
// foods are skipped from scoring, never failed on.
var ErrDataGap = errors.New("recommender: food missing essential nutrient")

// ErrUnsuitable marks a food excluded by the hard medical filter.
var ErrUnsuitable = errors.New("recommender: food excluded by medical filter")

// Hard medical ceilings, applied before any scoring. These track the
// upstream dataset's tuning and are a behavioral baseline, not derived
// values.
const (
	diabetesMaxCarbsG   = 30
	diabetesMaxCalories = 400
	obesityMaxCalories  = 450
	obesityMaxFatG      = 20
)

// nutritionWeights is the fixed weighting of the component scores.
var nutritionWeights = struct {
	calorie, protein, carb, fat, micro float64
}{0.25, 0.25, 0.20, 0.15, 0.15}

// Matcher scores a food against per-meal nutritional targets.
type Matcher struct {
	keywords *KeywordSet
}

// NewMatcher returns a matcher using the given keyword tables.
func NewMatcher(kw *KeywordSet) *Matcher {
	if kw == nil {
		kw = DefaultKeywords()
	}
	return &Matcher{keywords: kw}
}

// Suitable applies the hard medical filter. Foods failing it are
// excluded from ranking entirely rather than penalized.
func (m *Matcher) Suitable(food FoodItem, needs NutritionalNeeds) bool {
	name := strings.ToLower(food.Name)

	switch needs.MedicalCondition {
	case ConditionDiabetes:
		if food.Carbs != nil && *food.Carbs > diabetesMaxCarbsG {
			return false
		}
		if food.Calories != nil && *food.Calories > diabetesMaxCalories {
			return false
		}
	case ConditionHypertension:
		if food.SodiumMg != nil && *food.SodiumMg > needs.MealSodiumLimitMg {
			return false
		}
	case ConditionObesity:
		if food.Calories != nil && *food.Calories > obesityMaxCalories {
			return false
		}
		if food.Fat != nil && *food.Fat > obesityMaxFatG {
			return false
		}
		if containsAny(name, m.keywords.Fried) {
			return false
		}
	}
	return true
}

// Score computes the nutrition score in [0,1] for a single food. It
// returns ErrUnsuitable for hard-filtered foods and ErrDataGap when an
// essential macro is unknown.
func (m *Matcher) Score(food FoodItem, needs NutritionalNeeds) (float64, error) {
	if !m.Suitable(food, needs) {
		return 0, ErrUnsuitable
	}
	if !food.HasEssentialMacros() {
		return 0, ErrDataGap
	}

	meals := float64(needs.MainMealCount())
	calTarget := needs.DailyCalories / meals
	proteinTarget := needs.ProteinGrams / meals
	carbTarget := needs.CarbGrams / meals
	fatTarget := needs.FatGrams / meals

	calScore := deviationScore(*food.Calories, calTarget)
	proteinScore := deviationScore(*food.Protein, proteinTarget)
	carbScore := deviationScore(*food.Carbs, carbTarget)
	fatScore := deviationScore(*food.Fat, fatTarget)

	switch needs.MedicalCondition {
	case ConditionDiabetes:
		// Stricter carb sub-target: anything above 80% of the per-meal
		// carb allowance is discounted, harder the further over it is.
		strict := carbTarget * 0.8
		if *food.Carbs > strict {
			over := (*food.Carbs - strict) / strict
			carbScore *= clamp(0.7-0.5*over, 0.2, 0.7)
		}
	case ConditionObesity:
		// Reward leaner and higher-protein foods.
		if *food.Calories < calTarget {
			calScore = clamp(calScore*1.2, 0, 1)
		}
		if *food.Protein > proteinTarget {
			proteinScore = clamp(proteinScore*1.2, 0, 1)
		}
	}

	micro := m.micronutrientScore(food, needs)

	total := calScore*nutritionWeights.calorie +
		proteinScore*nutritionWeights.protein +
		carbScore*nutritionWeights.carb +
		fatScore*nutritionWeights.fat +
		micro*nutritionWeights.micro

	return clamp(total, 0, 1), nil
}

// deviationScore rewards closeness to the target with a quadratic
// penalty on the relative deviation.
func deviationScore(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	dev := (actual - target) / target
	return clamp(1-dev*dev, 0, 1)
}

// micronutrientScore is the condition-specific adjustment in
// [-0.5, 0.5], plus small general bonuses for micronutrient density.
func (m *Matcher) micronutrientScore(food FoodItem, needs NutritionalNeeds) float64 {
	name := strings.ToLower(food.Name)
	score := 0.0

	switch needs.MedicalCondition {
	case ConditionHypertension:
		if food.SodiumMg != nil && *food.SodiumMg < 200 {
			score += 0.15
		}
		if food.PotassiumMg != nil && *food.PotassiumMg > 300 {
			score += 0.15
		}
		if food.SodiumMg != nil && *food.SodiumMg > 400 {
			score -= 0.2
		}
	case ConditionDiabetes:
		if food.Fiber != nil && *food.Fiber > 5 {
			score += 0.15
		}
		if containsAny(name, m.keywords.Sweet) {
			score -= 0.2
		}
	case ConditionObesity:
		if food.Calories != nil && food.Protein != nil && *food.Calories > 0 {
			if *food.Protein*kcalPerGramProtein / *food.Calories > 0.3 {
				score += 0.15
			}
		}
		if food.Fiber != nil && *food.Fiber > 5 {
			score += 0.1
		}
	}

	// General micronutrient bonuses.
	if food.IronMg != nil && *food.IronMg > 2 {
		score += 0.05
	}
	if food.CalciumMg != nil && *food.CalciumMg > 100 {
		score += 0.05
	}
	if food.ZincMg != nil && *food.ZincMg > 1 {
		score += 0.05
	}
	if food.VitaminCMg != nil && *food.VitaminCMg > 10 {
		score += 0.05
	}

	return clamp(score, -0.5, 0.5)
}
