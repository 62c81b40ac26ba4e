package recommender

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicHonorsCatalogHint(t *testing.T) {
	h := NewHeuristicClassifier(nil)
	food := testFood("sesuatu", 900, 10, 100, 30)
	food.SlotHint = SlotSnack
	assert.Equal(t, SlotSnack, h.Classify(food))
}

func TestHeuristicKeywordWithCalorieGuard(t *testing.T) {
	h := NewHeuristicClassifier(nil)

	bubur := testFood("bubur ayam", 300, 12, 40, 8)
	assert.Equal(t, SlotBreakfast, h.Classify(bubur))

	// Breakfast keyword but far too heavy for the guard; falls through
	// to the calorie bands.
	heavyRoti := testFood("roti bakar spesial jumbo", 850, 20, 110, 35)
	assert.Equal(t, SlotDinner, h.Classify(heavyRoti))

	keripik := testFood("keripik singkong", 180, 2, 25, 9)
	assert.Equal(t, SlotSnack, h.Classify(keripik))

	jus := testFood("jus alpukat", 200, 3, 25, 10)
	assert.Equal(t, SlotSnack, h.Classify(jus))
}

func TestHeuristicCalorieBands(t *testing.T) {
	h := NewHeuristicClassifier(nil)

	light := testFood("pepaya potong", 60, 1, 15, 0)
	assert.Equal(t, SlotSnack, h.Classify(light))

	grain := testFood("lontong isi", 240, 9, 35, 4)
	grain.FoodGroup = GroupEnergySource
	assert.Equal(t, SlotBreakfast, h.Classify(grain))

	midProtein := testFood("pepes ikan mas", 400, 28, 12, 18)
	midProtein.FoodGroup = GroupAnimalProtein
	assert.Equal(t, SlotLunch, h.Classify(midProtein))

	mid := testFood("lapis legit", 380, 6, 50, 16)
	assert.Equal(t, SlotBreakfast, h.Classify(mid))

	heavyProtein := testFood("iga bakar", 700, 45, 15, 40)
	heavyProtein.FoodGroup = GroupAnimalProtein
	assert.Equal(t, SlotDinner, h.Classify(heavyProtein))

	veryHeavy := testFood("porsi besar campur", 950, 30, 120, 35)
	assert.Equal(t, SlotDinner, h.Classify(veryHeavy))
}

func TestHeuristicDeterministic(t *testing.T) {
	h := NewHeuristicClassifier(nil)
	foods := []FoodItem{
		testFood("soto ayam", 320, 22, 25, 12),
		testFood("kue lapis", 210, 3, 35, 7),
		testFood("nasi campur komplit", 820, 35, 95, 30),
	}
	for _, f := range foods {
		first := h.Classify(f)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, h.Classify(f))
		}
	}
}

func writeTestModel(t *testing.T) string {
	t.Helper()
	// A model whose intercepts alone decide the class, so predictions
	// are easy to reason about.
	model := SlotModel{
		Version:    1,
		Classes:    []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack},
		Weights:    make([][]float64, 4),
		Intercepts: []float64{0, 0, 0, 2},
	}
	for i := range model.Weights {
		model.Weights[i] = make([]float64, slotModelFeatureCount)
	}
	data, err := json.Marshal(model)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "slot_model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadSlotModel(t *testing.T) {
	path := writeTestModel(t)

	model, err := LoadSlotModel(path)
	require.NoError(t, err)
	assert.Len(t, model.Classes, 4)

	// Second load hits the cache.
	again, err := LoadSlotModel(path)
	require.NoError(t, err)
	assert.Same(t, model, again)

	_, err = LoadSlotModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadSlotModelRejectsBadShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	bad := SlotModel{
		Classes:    []MealSlot{SlotBreakfast},
		Weights:    [][]float64{{1, 2}},
		Intercepts: []float64{0},
	}
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = LoadSlotModel(path)
	assert.Error(t, err)
}

func TestModelClassifierPredictsArgmax(t *testing.T) {
	path := writeTestModel(t)
	model, err := LoadSlotModel(path)
	require.NoError(t, err)

	c := NewModelClassifier(model, nil)
	food := testFood("apapun", 400, 20, 40, 12)
	assert.Equal(t, SlotSnack, c.Classify(food))
}

func TestModelClassifierFallsBackOnMissingMacros(t *testing.T) {
	path := writeTestModel(t)
	model, err := LoadSlotModel(path)
	require.NoError(t, err)

	c := NewModelClassifier(model, nil)
	partial := FoodItem{Name: "bubur ayam", Calories: fptr(300)}

	// The heuristic takes over; the model would have said snack.
	assert.Equal(t, SlotBreakfast, c.Classify(partial))
}

func TestSlotModelProbabilitiesSumToOne(t *testing.T) {
	path := writeTestModel(t)
	model, err := LoadSlotModel(path)
	require.NoError(t, err)

	features := make([]float64, slotModelFeatureCount)
	probs := model.Probabilities(features)

	var sum float64
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
