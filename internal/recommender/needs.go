package recommender

// NutritionalNeeds are the per-day targets derived from a profile and
// an active goal, plus per-meal ceilings used as hard limits.
type NutritionalNeeds struct {
	DailyCalories float64
	ProteinGrams  float64
	CarbGrams     float64
	FatGrams      float64

	MedicalCondition MedicalCondition

	// Per-meal ceilings, condition-adjusted.
	MealSodiumLimitMg float64
	MealSugarLimitG   float64
}

// macroRatio is the share of daily energy assigned to each macro.
type macroRatio struct {
	protein, carbs, fat float64
}

const (
	weightLossDeficit  = 500
	weightGainSurplus  = 400
	calorieFloorMale   = 1200
	calorieFloorFemale = 1000

	kcalPerGramProtein = 4
	kcalPerGramCarb    = 4
	kcalPerGramFat     = 9
)

// CalculateNeeds derives daily energy and macro targets from the
// Mifflin–St Jeor equation, the 5-tier activity table, the goal
// direction and the medical condition. It is pure and deterministic:
// identical inputs always produce identical outputs.
func CalculateNeeds(user UserProfile, goal DietGoal) NutritionalNeeds {
	// Mifflin–St Jeor, sex-specific offset.
	bmr := 10*user.WeightKg + 6.25*user.HeightCm - 5*float64(user.Age)
	if user.Gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor, ok := activityMultipliers[user.ActivityLevel]
	if !ok {
		factor = activityMultipliers[ActivitySedentary]
	}
	calories := bmr * factor

	// Goal direction: a fixed deficit toward a lower target weight, a
	// moderate surplus toward a higher one.
	switch {
	case goal.TargetWeightKg < user.WeightKg:
		calories -= weightLossDeficit
	case goal.TargetWeightKg > user.WeightKg:
		calories += weightGainSurplus
	}

	ratio := macroRatio{protein: 0.30, carbs: 0.45, fat: 0.25}
	sodiumLimit := 700.0
	sugarLimit := 25.0

	switch goal.MedicalCondition {
	case ConditionDiabetes:
		calories *= 0.9
		ratio = macroRatio{protein: 0.30, carbs: 0.30, fat: 0.40}
		sugarLimit = 15
	case ConditionHypertension:
		calories *= 0.95
		ratio = macroRatio{protein: 0.25, carbs: 0.50, fat: 0.25}
		sodiumLimit = 500
	case ConditionObesity:
		calories *= 0.80
		ratio = macroRatio{protein: 0.35, carbs: 0.40, fat: 0.25}
	}

	floor := float64(calorieFloorFemale)
	if user.Gender == GenderMale {
		floor = calorieFloorMale
	}
	if calories < floor {
		calories = floor
	}

	return NutritionalNeeds{
		DailyCalories:     calories,
		ProteinGrams:      calories * ratio.protein / kcalPerGramProtein,
		CarbGrams:         calories * ratio.carbs / kcalPerGramCarb,
		FatGrams:          calories * ratio.fat / kcalPerGramFat,
		MedicalCondition:  goal.MedicalCondition,
		MealSodiumLimitMg: sodiumLimit,
		MealSugarLimitG:   sugarLimit,
	}
}

// MainMealCount returns how many main meals the daily targets are
// split across. Obesity gets four to encourage smaller, more frequent
// meals.
func (n NutritionalNeeds) MainMealCount() int {
	if n.MedicalCondition == ConditionObesity {
		return 4
	}
	return 3
}
