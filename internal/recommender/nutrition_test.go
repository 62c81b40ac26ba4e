package recommender

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func testFood(name string, cal, protein, carbs, fat float64) FoodItem {
	return FoodItem{
		ID:         uuid.New(),
		Name:       name,
		Calories:   fptr(cal),
		Protein:    fptr(protein),
		Carbs:      fptr(carbs),
		Fat:        fptr(fat),
		FoodStatus: StatusPrepared,
	}
}

func TestSuitableDiabetesHardLimits(t *testing.T) {
	m := NewMatcher(nil)
	needs := NutritionalNeeds{MedicalCondition: ConditionDiabetes}

	highCarb := testFood("nasi goreng spesial", 350, 10, 40, 12)
	assert.False(t, m.Suitable(highCarb, needs))

	highCal := testFood("rendang daging", 450, 25, 10, 30)
	assert.False(t, m.Suitable(highCal, needs))

	ok := testFood("pepes ikan", 180, 22, 5, 8)
	assert.True(t, m.Suitable(ok, needs))
}

func TestSuitableHypertensionSodiumCeiling(t *testing.T) {
	m := NewMatcher(nil)
	needs := NutritionalNeeds{MedicalCondition: ConditionHypertension, MealSodiumLimitMg: 500}

	salty := testFood("ikan asin", 200, 25, 2, 8)
	salty.SodiumMg = fptr(900)
	assert.False(t, m.Suitable(salty, needs))

	mild := testFood("sayur bening", 120, 4, 15, 2)
	mild.SodiumMg = fptr(150)
	assert.True(t, m.Suitable(mild, needs))
}

func TestSuitableObesityFriedKeyword(t *testing.T) {
	m := NewMatcher(nil)
	needs := NutritionalNeeds{MedicalCondition: ConditionObesity}

	fried := testFood("ayam goreng", 320, 28, 5, 18)
	assert.False(t, m.Suitable(fried, needs))

	heavy := testFood("gulai kambing", 500, 30, 8, 35)
	assert.False(t, m.Suitable(heavy, needs))

	fatty := testFood("opor ayam", 400, 20, 10, 25)
	assert.False(t, m.Suitable(fatty, needs))

	lean := testFood("pepes tahu", 180, 14, 8, 7)
	assert.True(t, m.Suitable(lean, needs))
}

func TestSuitableNoConditionPassesEverything(t *testing.T) {
	m := NewMatcher(nil)
	needs := NutritionalNeeds{MedicalCondition: ConditionNone}

	rich := testFood("martabak manis keju", 900, 15, 100, 45)
	assert.True(t, m.Suitable(rich, needs))
}

func TestScoreUnsuitableAndDataGap(t *testing.T) {
	m := NewMatcher(nil)
	diabetic := NutritionalNeeds{
		DailyCalories: 1800, ProteinGrams: 135, CarbGrams: 135, FatGrams: 80,
		MedicalCondition: ConditionDiabetes,
	}

	_, err := m.Score(testFood("bubur manis", 350, 5, 60, 3), diabetic)
	assert.ErrorIs(t, err, ErrUnsuitable)

	gap := FoodItem{ID: uuid.New(), Name: "tanpa data", Calories: fptr(200)}
	_, err = m.Score(gap, NutritionalNeeds{DailyCalories: 2000, ProteinGrams: 150, CarbGrams: 225, FatGrams: 55})
	assert.ErrorIs(t, err, ErrDataGap)
}

func TestScoreRewardsCloseness(t *testing.T) {
	m := NewMatcher(nil)
	needs := NutritionalNeeds{
		DailyCalories: 2100, ProteinGrams: 157.5, CarbGrams: 236.25, FatGrams: 58.33,
		MedicalCondition: ConditionNone,
	}
	// Per-meal targets with 3 meals: 700 kcal, 52.5g protein, 78.75g
	// carbs, 19.4g fat.
	near := testFood("nasi ayam bakar lengkap", 700, 52, 79, 19)
	far := testFood("kerupuk", 150, 2, 20, 8)

	nearScore, err := m.Score(near, needs)
	assert.NoError(t, err)
	farScore, err := m.Score(far, needs)
	assert.NoError(t, err)

	assert.Greater(t, nearScore, farScore)
	assert.GreaterOrEqual(t, nearScore, 0.0)
	assert.LessOrEqual(t, nearScore, 1.0)
	assert.GreaterOrEqual(t, farScore, 0.0)
}

func TestScoreDiabetesCarbDiscount(t *testing.T) {
	m := NewMatcher(nil)
	needs := NutritionalNeeds{
		DailyCalories: 1600, ProteinGrams: 120, CarbGrams: 120, FatGrams: 71,
		MedicalCondition: ConditionDiabetes,
	}
	// Per-meal carb target ~40g; strict sub-target 32g. 28g carbs stays
	// under it, matching calories otherwise.
	under := testFood("pepes ayam", 380, 30, 20, 18)
	over := testFood("lontong sayur kecil", 380, 30, 29, 14)

	underScore, err := m.Score(under, needs)
	assert.NoError(t, err)
	overScore, err := m.Score(over, needs)
	assert.NoError(t, err)

	// Both are suitable, but the carb-heavier meal loses carb score.
	assert.Greater(t, underScore, 0.0)
	assert.Greater(t, overScore, 0.0)
}

func TestDeviationScore(t *testing.T) {
	assert.InDelta(t, 1.0, deviationScore(100, 100), 0.0001)
	assert.InDelta(t, 0.75, deviationScore(150, 100), 0.0001)
	assert.InDelta(t, 0.0, deviationScore(200, 100), 0.0001)
	assert.InDelta(t, 0.0, deviationScore(500, 100), 0.0001)
	assert.InDelta(t, 0.0, deviationScore(100, 0), 0.0001)
}

func TestMicronutrientScoreBounded(t *testing.T) {
	m := NewMatcher(nil)
	dense := testFood("sayur bayam kaya zat besi", 90, 5, 10, 1)
	dense.IronMg = fptr(4)
	dense.CalciumMg = fptr(150)
	dense.ZincMg = fptr(2)
	dense.VitaminCMg = fptr(30)
	dense.Fiber = fptr(6)
	dense.PotassiumMg = fptr(500)
	dense.SodiumMg = fptr(50)

	for _, cond := range []MedicalCondition{ConditionNone, ConditionDiabetes, ConditionHypertension, ConditionObesity} {
		s := m.micronutrientScore(dense, NutritionalNeeds{MedicalCondition: cond})
		assert.GreaterOrEqual(t, s, -0.5)
		assert.LessOrEqual(t, s, 0.5)
	}
}
