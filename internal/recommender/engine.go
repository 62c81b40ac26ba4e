package recommender

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Request carries everything one recommendation run needs. The caller
// supplies the active goal and the already-loaded candidate pool; the
// engine performs no user or catalog lookups of its own beyond the
// widening fallback.
type Request struct {
	User        UserProfile
	Goal        DietGoal
	Preferences []Preference
	Candidates  []FoodItem
	Now         time.Time
}

// DailyMenu is the engine output: the selected candidates per slot
// plus the needs they were scored against and the weights used.
type DailyMenu struct {
	Needs   NutritionalNeeds
	Weights FusionWeights
	Slots   map[MealSlot][]RankedCandidate
}

// Items flattens the menu in slot order.
func (m DailyMenu) Items() []RankedCandidate {
	var out []RankedCandidate
	for _, slot := range MealSlots {
		out = append(out, m.Slots[slot]...)
	}
	return out
}

// slotBand is the calorie range used when widening an underfilled
// slot's candidate pool.
type slotBand struct {
	min, max float64
}

var slotBands = map[MealSlot]slotBand{
	SlotBreakfast: {50, 600},
	SlotLunch:     {250, 900},
	SlotDinner:    {250, 900},
	SlotSnack:     {0, 400},
}

// Engine wires the scoring components together. It is stateless per
// request apart from the durable fusion weights; one instance is safe
// for concurrent use.
type Engine struct {
	users      UserSource
	foods      FoodSource
	feedback   FeedbackSource
	weights    WeightStore
	classifier SlotClassifier
	matcher    *Matcher
	cf         *CollaborativeFilter
	selector   *Selector
	keywords   *KeywordSet
	slotSize   int
	log        zerolog.Logger
}

// Options tune an Engine beyond its required collaborators.
type Options struct {
	Keywords      *KeywordSet
	Classifier    SlotClassifier
	NeighborCount int
	SlotSize      int
	RecencyWindow time.Duration
	Logger        zerolog.Logger
}

// NewEngine builds an engine. Users, foods, feedback and weights are
// required; everything in opts has a working default.
func NewEngine(users UserSource, foods FoodSource, feedback FeedbackSource, weights WeightStore, opts Options) (*Engine, error) {
	if users == nil || foods == nil || feedback == nil || weights == nil {
		return nil, errors.New("recommender: engine requires user, food, feedback and weight sources")
	}
	kw := opts.Keywords
	if kw == nil {
		kw = DefaultKeywords()
	}
	classifier := opts.Classifier
	if classifier == nil {
		classifier = NewHeuristicClassifier(kw)
	}
	slotSize := opts.SlotSize
	if slotSize <= 0 {
		slotSize = DefaultSlotSize
	}
	return &Engine{
		users:      users,
		foods:      foods,
		feedback:   feedback,
		weights:    weights,
		classifier: classifier,
		matcher:    NewMatcher(kw),
		cf:         NewCollaborativeFilter(opts.NeighborCount),
		selector:   NewSelector(opts.RecencyWindow),
		keywords:   kw,
		slotSize:   slotSize,
		log:        opts.Logger,
	}, nil
}

// Recommend produces a daily menu for the request. An empty candidate
// pool yields an empty menu, not an error; per-food data gaps are
// skipped and logged, never fatal.
func (e *Engine) Recommend(ctx context.Context, req Request) (DailyMenu, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	needs := CalculateNeeds(req.User, req.Goal)

	weights, err := e.weights.Load(ctx, req.User.ID)
	if err != nil {
		return DailyMenu{}, fmt.Errorf("failed to load fusion weights: %w", err)
	}
	weights = weights.Normalize()

	menu := DailyMenu{
		Needs:   needs,
		Weights: weights,
		Slots:   make(map[MealSlot][]RankedCandidate, len(MealSlots)),
	}

	pool := e.filterByPreferences(req.Candidates, req.Preferences)
	if len(pool) == 0 {
		e.log.Warn().
			Str("user_id", req.User.ID.String()).
			Int("candidates", len(req.Candidates)).
			Msg("no candidates survive preference filtering")
		return menu, nil
	}

	population, err := e.users.Population(ctx)
	if err != nil {
		return DailyMenu{}, fmt.Errorf("failed to load user population: %w", err)
	}
	allFeedback, err := e.feedback.AllFeedback(ctx)
	if err != nil {
		return DailyMenu{}, fmt.Errorf("failed to load feedback history: %w", err)
	}

	cfScores := e.cf.Scores(req.User.ID, population, allFeedback, pool)

	bySlot := make(map[MealSlot][]RankedCandidate, len(MealSlots))
	seen := make(map[uuid.UUID]bool, len(pool))
	dataGaps := 0
	for _, food := range pool {
		ranked, err := e.rank(food, needs, weights, cfScores)
		if err != nil {
			if errors.Is(err, ErrDataGap) {
				dataGaps++
			}
			continue
		}
		seen[food.ID] = true
		bySlot[ranked.Slot] = append(bySlot[ranked.Slot], ranked)
	}
	if dataGaps > 0 {
		e.log.Debug().
			Int("skipped", dataGaps).
			Msg("foods skipped for missing macros")
	}

	// Widen underfilled slots with a banded catalog query before
	// selection.
	for _, slot := range MealSlots {
		if len(bySlot[slot]) >= e.slotSize {
			continue
		}
		extra, err := e.widenSlot(ctx, slot, needs, weights, cfScores, req.Preferences, seen)
		if err != nil {
			e.log.Warn().Err(err).
				Str("slot", string(slot)).
				Msg("fallback pool query failed")
			continue
		}
		bySlot[slot] = append(bySlot[slot], extra...)
	}

	userFeedback, err := e.feedback.UserFeedback(ctx, req.User.ID)
	if err != nil {
		return DailyMenu{}, fmt.Errorf("failed to load user feedback: %w", err)
	}
	recent := e.selector.RecentFoods(userFeedback, now)

	for _, slot := range MealSlots {
		menu.Slots[slot] = e.selector.Select(bySlot[slot], e.slotSize, recent)
	}
	return menu, nil
}

// UpdateWeights records one rating and adapts the user's fusion
// weights. The rating itself is persisted by the caller; only the
// weight adjustment happens here.
func (e *Engine) UpdateWeights(ctx context.Context, userID, foodID uuid.UUID, rating int) (FusionWeights, error) {
	if rating < 1 || rating > 5 {
		return FusionWeights{}, fmt.Errorf("rating %d out of range", rating)
	}

	history, err := e.feedback.UserFeedback(ctx, userID)
	if err != nil {
		return FusionWeights{}, fmt.Errorf("failed to load user feedback: %w", err)
	}
	prior := 0
	for _, rec := range history {
		if rec.FoodID == foodID && rec.Rating > 0 {
			prior++
		}
	}

	weights, err := e.weights.Load(ctx, userID)
	if err != nil {
		return FusionWeights{}, fmt.Errorf("failed to load fusion weights: %w", err)
	}
	adapted := weights.Adapt(rating, prior)
	if err := e.weights.Save(ctx, userID, adapted); err != nil {
		return FusionWeights{}, fmt.Errorf("failed to save fusion weights: %w", err)
	}

	e.log.Debug().
		Str("user_id", userID.String()).
		Int("rating", rating).
		Int("prior_ratings", prior).
		Float64("cf_weight", adapted.CF).
		Msg("fusion weights updated")
	return adapted, nil
}

// rank scores and classifies one food.
func (e *Engine) rank(food FoodItem, needs NutritionalNeeds, weights FusionWeights, cfScores map[uuid.UUID]float64) (RankedCandidate, error) {
	nutrition, err := e.matcher.Score(food, needs)
	if err != nil {
		return RankedCandidate{}, err
	}
	cfScore := cfScores[food.ID]
	medical := MedicalBonus(food, needs.MedicalCondition, e.keywords)
	preparation := PreparationScore(food, e.keywords)

	return RankedCandidate{
		Food:             food,
		NutritionScore:   nutrition,
		CFScore:          cfScore,
		MedicalBonus:     medical,
		PreparationScore: preparation,
		TotalScore:       Fuse(weights, nutrition, cfScore, medical, preparation),
		Slot:             e.classifier.Classify(food),
	}, nil
}

// widenSlot pulls more candidates from the catalog for an underfilled
// slot, using the slot's calorie band lowered to the condition's
// ceiling, then re-applies the preference filter and scoring.
func (e *Engine) widenSlot(
	ctx context.Context,
	slot MealSlot,
	needs NutritionalNeeds,
	weights FusionWeights,
	cfScores map[uuid.UUID]float64,
	prefs []Preference,
	seen map[uuid.UUID]bool,
) ([]RankedCandidate, error) {
	band := slotBands[slot]
	maxCal := band.max
	switch needs.MedicalCondition {
	case ConditionDiabetes:
		if maxCal > diabetesMaxCalories {
			maxCal = diabetesMaxCalories
		}
	case ConditionObesity:
		if maxCal > obesityMaxCalories {
			maxCal = obesityMaxCalories
		}
	}

	foods, err := e.foods.FoodsByCalorieBand(ctx, band.min, maxCal)
	if err != nil {
		return nil, err
	}

	var out []RankedCandidate
	for _, food := range foods {
		if seen[food.ID] {
			continue
		}
		if !MatchesPreferences(food, prefs, e.keywords) {
			continue
		}
		ranked, err := e.rank(food, needs, weights, cfScores)
		if err != nil {
			continue
		}
		if ranked.Slot != slot {
			continue
		}
		seen[food.ID] = true
		out = append(out, ranked)
	}
	return out, nil
}

func (e *Engine) filterByPreferences(foods []FoodItem, prefs []Preference) []FoodItem {
	if len(prefs) == 0 {
		return foods
	}
	out := make([]FoodItem, 0, len(foods))
	for _, f := range foods {
		if MatchesPreferences(f, prefs, e.keywords) {
			out = append(out, f)
		}
	}
	return out
}
