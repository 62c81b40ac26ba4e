package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"gorm.io/gorm"
)

// PreferenceService manages dietary and allergy constraints.
type PreferenceService struct {
	db *gorm.DB
}

var _ IPreferenceService = (*PreferenceService)(nil)

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// ReplacePreferences swaps the user's active preference set for the
// given one in a single transaction. Old rows are deactivated, not
// deleted. An empty list clears all constraints.
func (s *PreferenceService) ReplacePreferences(ctx context.Context, userID uuid.UUID, preferences []string) ([]*models.FoodPreference, error) {
	for _, p := range preferences {
		if !models.ValidPreference(p) {
			return nil, fmt.Errorf("unknown preference %q", p)
		}
	}

	created := make([]*models.FoodPreference, 0, len(preferences))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FoodPreference{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate preferences: %w", err)
		}
		for _, p := range preferences {
			pref := models.FoodPreference{
				ID:             uuid.New(),
				UserID:         userID,
				PreferenceType: p,
				IsActive:       true,
			}
			if err := tx.Create(&pref).Error; err != nil {
				return fmt.Errorf("failed to create preference: %w", err)
			}
			created = append(created, &pref)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetActivePreferences returns the user's current constraint set.
func (s *PreferenceService) GetActivePreferences(ctx context.Context, userID uuid.UUID) ([]*models.FoodPreference, error) {
	var prefs []models.FoodPreference
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	out := make([]*models.FoodPreference, len(prefs))
	for i := range prefs {
		out[i] = &prefs[i]
	}
	return out, nil
}
