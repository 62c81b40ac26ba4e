package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/recommender"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWeightStore persists per-user fusion weights in the
// engine_weights table so adaptation survives restarts.
type GormWeightStore struct {
	db *gorm.DB
}

var _ recommender.WeightStore = (*GormWeightStore)(nil)

func NewGormWeightStore(db *gorm.DB) *GormWeightStore {
	return &GormWeightStore{db: db}
}

// Load returns the stored weights, or the defaults for users without
// a row yet.
func (s *GormWeightStore) Load(ctx context.Context, userID uuid.UUID) (recommender.FusionWeights, error) {
	var row models.EngineWeights
	err := s.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return recommender.DefaultFusionWeights(), nil
	}
	if err != nil {
		return recommender.FusionWeights{}, fmt.Errorf("failed to load engine weights: %w", err)
	}
	return recommender.FusionWeights{
		CF:          row.CFWeight,
		Nutrition:   row.NutritionWeight,
		Preparation: row.PreparationWeight,
		Medical:     row.MedicalWeight,
	}.Normalize(), nil
}

// Save upserts the weights for the user.
func (s *GormWeightStore) Save(ctx context.Context, userID uuid.UUID, w recommender.FusionWeights) error {
	w = w.Normalize()
	row := models.EngineWeights{
		UserID:            userID,
		CFWeight:          w.CF,
		NutritionWeight:   w.Nutrition,
		PreparationWeight: w.Preparation,
		MedicalWeight:     w.Medical,
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"cf_weight", "nutrition_weight", "preparation_weight", "medical_weight", "updated_at"}),
		}).
		Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save engine weights: %w", err)
	}
	return nil
}
