package recommender

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
)

// SlotClassifier assigns a food to one of the four meal slots. The
// learned model and the deterministic heuristic are both
// implementations of this interface, selected at construction, so the
// fallback path is exercised identically by tests regardless of model
// presence.
type SlotClassifier interface {
	Classify(food FoodItem) MealSlot
}

// ---------- Heuristic classifier ----------

// Calorie bands and guards for the heuristic. The ordering of the
// rules (catalog hint, then keyword+calorie guard, then pure calorie
// bands) is a policy decision that determines slot balance and must
// not be reordered.
const (
	snackKeywordMaxCalories     = 600
	breakfastKeywordMaxCalories = 500
	breakfastKeywordMinCalories = 50
	drinkMaxCalories            = 250

	snackBandMaxCalories  = 250
	lunchBandMaxCalories  = 500
	dinnerBandMinCalories = 800
)

// HeuristicClassifier is the deterministic fallback classifier. It is
// also the golden path when no trained model artifact is configured.
type HeuristicClassifier struct {
	keywords *KeywordSet
}

// NewHeuristicClassifier builds the fallback classifier from the given
// keyword tables.
func NewHeuristicClassifier(kw *KeywordSet) *HeuristicClassifier {
	if kw == nil {
		kw = DefaultKeywords()
	}
	return &HeuristicClassifier{keywords: kw}
}

// Classify assigns a slot using, in order: the catalog hint, curated
// keyword vocabularies with calorie guards, and calorie-banded
// defaults. Identical inputs always yield the identical slot.
func (h *HeuristicClassifier) Classify(food FoodItem) MealSlot {
	if ValidSlot(food.SlotHint) {
		return food.SlotHint
	}

	name := strings.ToLower(food.Name)
	cal := 0.0
	if food.Calories != nil {
		cal = *food.Calories
	}
	protein := 0.0
	if food.Protein != nil {
		protein = *food.Protein
	}
	carbs := 0.0
	if food.Carbs != nil {
		carbs = *food.Carbs
	}

	if containsAny(name, h.keywords.Breakfast) &&
		cal >= breakfastKeywordMinCalories && cal < breakfastKeywordMaxCalories {
		return SlotBreakfast
	}
	if containsAny(name, h.keywords.Snack) && cal < snackKeywordMaxCalories {
		return SlotSnack
	}
	if containsAny(name, h.keywords.Drink) && cal < drinkMaxCalories {
		return SlotSnack
	}

	switch {
	case cal <= snackBandMaxCalories:
		// Light but substantial grain foods make better breakfasts
		// than snacks.
		if protein >= 8 && carbs >= 20 && food.FoodGroup == GroupEnergySource {
			return SlotBreakfast
		}
		return SlotSnack
	case cal <= lunchBandMaxCalories:
		if protein >= 15 && (food.FoodGroup == GroupAnimalProtein || food.FoodGroup == GroupPreparedDish) {
			return SlotLunch
		}
		return SlotBreakfast
	case cal <= dinnerBandMinCalories:
		if food.FoodGroup == GroupAnimalProtein || protein >= 25 {
			return SlotDinner
		}
		return SlotLunch
	default:
		return SlotDinner
	}
}

// ---------- Model-backed classifier ----------

// SlotModel is a serialized multinomial linear model over nutrient
// ratios and keyword-presence features, trained offline. It exposes a
// probability per class.
type SlotModel struct {
	Version    int         `json:"version"`
	Classes    []MealSlot  `json:"classes"`
	Features   []string    `json:"features"`
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
}

// slotModelFeatureCount is the expected feature vector width:
// calories, protein/fat/carb grams, protein/fat/carb percent of
// energy, and three keyword-hit flags.
const slotModelFeatureCount = 10

// Validate checks structural consistency of a loaded artifact.
func (m *SlotModel) Validate() error {
	if len(m.Classes) == 0 {
		return fmt.Errorf("slot model has no classes")
	}
	if len(m.Weights) != len(m.Classes) || len(m.Intercepts) != len(m.Classes) {
		return fmt.Errorf("slot model class/weight shape mismatch")
	}
	for i, row := range m.Weights {
		if len(row) != slotModelFeatureCount {
			return fmt.Errorf("slot model class %d expects %d features, has %d", i, slotModelFeatureCount, len(row))
		}
	}
	for _, c := range m.Classes {
		if !ValidSlot(c) {
			return fmt.Errorf("slot model contains unknown class %q", c)
		}
	}
	return nil
}

// Probabilities returns the softmax class distribution for a feature
// vector.
func (m *SlotModel) Probabilities(features []float64) []float64 {
	logits := make([]float64, len(m.Classes))
	maxLogit := math.Inf(-1)
	for i := range m.Classes {
		z := m.Intercepts[i]
		for j, f := range features {
			z += m.Weights[i][j] * f
		}
		logits[i] = z
		if z > maxLogit {
			maxLogit = z
		}
	}
	var sum float64
	probs := make([]float64, len(logits))
	for i, z := range logits {
		probs[i] = math.Exp(z - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// modelCache caches loaded artifacts process-wide; the load is the
// engine's only I/O and happens once per path.
var modelCache = struct {
	mu     sync.Mutex
	models map[string]*SlotModel
}{models: make(map[string]*SlotModel)}

// LoadSlotModel reads and validates a model artifact, caching the
// result per path for the life of the process.
func LoadSlotModel(path string) (*SlotModel, error) {
	modelCache.mu.Lock()
	defer modelCache.mu.Unlock()
	if m, ok := modelCache.models[path]; ok {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slot model: %w", err)
	}
	var model SlotModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decode slot model: %w", err)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	modelCache.models[path] = &model
	return &model, nil
}

// ModelClassifier wraps a trained slot model and delegates to the
// heuristic whenever prediction is not possible.
type ModelClassifier struct {
	model    *SlotModel
	keywords *KeywordSet
	fallback *HeuristicClassifier
}

// NewModelClassifier builds a classifier around a loaded model.
func NewModelClassifier(model *SlotModel, kw *KeywordSet) *ModelClassifier {
	if kw == nil {
		kw = DefaultKeywords()
	}
	return &ModelClassifier{
		model:    model,
		keywords: kw,
		fallback: NewHeuristicClassifier(kw),
	}
}

// Classify predicts the slot with the highest class probability.
func (c *ModelClassifier) Classify(food FoodItem) MealSlot {
	features, ok := c.featureVector(food)
	if !ok {
		return c.fallback.Classify(food)
	}
	probs := c.model.Probabilities(features)
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return c.model.Classes[best]
}

// featureVector mirrors the training pipeline: raw macros, percent of
// energy per macro and keyword-presence flags.
func (c *ModelClassifier) featureVector(food FoodItem) ([]float64, bool) {
	if !food.HasEssentialMacros() {
		return nil, false
	}
	cal := *food.Calories
	protein := *food.Protein
	fat := *food.Fat
	carbs := *food.Carbs

	energy := math.Max(1, cal)
	name := strings.ToLower(food.Name)

	features := []float64{
		cal,
		protein,
		fat,
		carbs,
		protein * kcalPerGramProtein / energy * 100,
		fat * kcalPerGramFat / energy * 100,
		carbs * kcalPerGramCarb / energy * 100,
		boolFeature(containsAny(name, c.keywords.Breakfast)),
		boolFeature(containsAny(name, c.keywords.LunchDinner)),
		boolFeature(containsAny(name, c.keywords.Snack)),
	}
	return features, true
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
