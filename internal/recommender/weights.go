package recommender

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// FusionWeights is the per-user blend of the four ranking signals. The
// four values always sum to 1 after Normalize.
type FusionWeights struct {
	CF          float64 `json:"cf_weight"`
	Nutrition   float64 `json:"nutrition_weight"`
	Preparation float64 `json:"preparation_weight"`
	Medical     float64 `json:"medical_weight"`
}

// Adaptation bounds. The CF weight random-walks within
// [minCFWeight, maxCFWeight] in steps of weightStep; the other three
// weights absorb the difference proportionally.
const (
	weightStep  = 0.05
	minCFWeight = 0.10
	maxCFWeight = 0.50

	// adaptMinPriorRatings is how many prior ratings of the same food
	// a user needs before a new rating moves the weights. A single
	// rating is too noisy to act on.
	adaptMinPriorRatings = 2
)

// DefaultFusionWeights is the starting blend for every user.
func DefaultFusionWeights() FusionWeights {
	return FusionWeights{CF: 0.30, Nutrition: 0.45, Preparation: 0.15, Medical: 0.10}
}

// Sum returns the total of the four weights.
func (w FusionWeights) Sum() float64 {
	return w.CF + w.Nutrition + w.Preparation + w.Medical
}

// Normalize rescales the weights to sum to 1. A degenerate all-zero
// state resets to the defaults rather than dividing by zero.
func (w FusionWeights) Normalize() FusionWeights {
	sum := w.Sum()
	if sum <= 0 {
		return DefaultFusionWeights()
	}
	return FusionWeights{
		CF:          w.CF / sum,
		Nutrition:   w.Nutrition / sum,
		Preparation: w.Preparation / sum,
		Medical:     w.Medical / sum,
	}
}

// Adapt applies one feedback observation. A rating of 4 or above from
// a user with enough prior ratings of the same food shifts weight
// toward the collaborative signal; a rating of 2 or below shifts it
// back toward the nutrition and preparation signals. Mid ratings and
// thin histories leave the weights untouched. The result is always
// normalized.
func (w FusionWeights) Adapt(rating, priorRatings int) FusionWeights {
	if priorRatings < adaptMinPriorRatings {
		return w
	}

	var target float64
	switch {
	case rating >= 4:
		target = clamp(w.CF+weightStep, minCFWeight, maxCFWeight)
	case rating <= 2:
		target = clamp(w.CF-weightStep, minCFWeight, maxCFWeight)
	default:
		return w
	}

	// Redistribute the delta across the other three weights in
	// proportion to their current share.
	remaining := 1 - target
	others := w.Nutrition + w.Preparation + w.Medical
	if others <= 0 {
		d := DefaultFusionWeights()
		others = d.Nutrition + d.Preparation + d.Medical
		w.Nutrition, w.Preparation, w.Medical = d.Nutrition, d.Preparation, d.Medical
	}
	scale := remaining / others
	return FusionWeights{
		CF:          target,
		Nutrition:   w.Nutrition * scale,
		Preparation: w.Preparation * scale,
		Medical:     w.Medical * scale,
	}.Normalize()
}

// WeightStore persists fusion weights per user so adaptation survives
// process restarts. Load must return the defaults for unknown users.
type WeightStore interface {
	Load(ctx context.Context, userID uuid.UUID) (FusionWeights, error)
	Save(ctx context.Context, userID uuid.UUID, w FusionWeights) error
}

// MemoryWeightStore is an in-process WeightStore used by tests and by
// deployments without a durable backend.
type MemoryWeightStore struct {
	mu      sync.RWMutex
	weights map[uuid.UUID]FusionWeights
}

// NewMemoryWeightStore returns an empty in-memory store.
func NewMemoryWeightStore() *MemoryWeightStore {
	return &MemoryWeightStore{weights: make(map[uuid.UUID]FusionWeights)}
}

// Load returns the stored weights for the user, or the defaults.
func (s *MemoryWeightStore) Load(_ context.Context, userID uuid.UUID) (FusionWeights, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if w, ok := s.weights[userID]; ok {
		return w, nil
	}
	return DefaultFusionWeights(), nil
}

// Save stores the weights for the user.
func (s *MemoryWeightStore) Save(_ context.Context, userID uuid.UUID, w FusionWeights) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights[userID] = w.Normalize()
	return nil
}
