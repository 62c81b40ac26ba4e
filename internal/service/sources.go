package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/recommender"
	"gorm.io/gorm"
)

// foodToItem converts a catalog row to the engine's value type.
func foodToItem(f *models.Food) recommender.FoodItem {
	return recommender.FoodItem{
		ID:          f.ID,
		Name:        f.Name,
		Calories:    f.Calories,
		Protein:     f.Protein,
		Carbs:       f.Carbs,
		Fat:         f.Fat,
		Fiber:       f.Fiber,
		SodiumMg:    f.SodiumMg,
		PotassiumMg: f.PotassiumMg,
		CalciumMg:   f.CalciumMg,
		IronMg:      f.IronMg,
		ZincMg:      f.ZincMg,
		VitaminCMg:  f.VitaminCMg,

		IsVegetarian:    f.IsVegetarian,
		IsHalal:         f.IsHalal,
		ContainsDairy:   f.ContainsDairy,
		ContainsNuts:    f.ContainsNuts,
		ContainsSeafood: f.ContainsSeafood,
		ContainsEggs:    f.ContainsEggs,
		ContainsSoy:     f.ContainsSoy,

		FoodGroup:  f.FoodGroup,
		FoodStatus: recommender.FoodStatus(f.FoodStatus),
		SlotHint:   recommender.MealSlot(f.MealSlot),
	}
}

// gormUserSource feeds the engine the population of users with their
// active goal conditions.
type gormUserSource struct {
	db *gorm.DB
}

var _ recommender.UserSource = (*gormUserSource)(nil)

func (s *gormUserSource) Population(ctx context.Context) ([]recommender.NeighborProfile, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load user population: %w", err)
	}

	var goals []models.DietGoal
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.GoalStatusActive).
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to load active goals: %w", err)
	}
	conditionByUser := make(map[uuid.UUID]string, len(goals))
	for _, g := range goals {
		conditionByUser[g.UserID] = g.MedicalCondition
	}

	out := make([]recommender.NeighborProfile, 0, len(users))
	for _, u := range users {
		condition := conditionByUser[u.ID]
		if condition == "" {
			condition = models.ConditionNone
		}
		out = append(out, recommender.NeighborProfile{
			User: recommender.UserProfile{
				ID:            u.ID,
				Age:           u.Age,
				WeightKg:      u.WeightKg,
				HeightCm:      u.HeightCm,
				Gender:        recommender.Gender(u.Gender),
				ActivityLevel: recommender.ActivityLevel(u.ActivityLevel),
			},
			Condition: recommender.MedicalCondition(condition),
		})
	}
	return out, nil
}

// gormFeedbackSource exposes persisted recommendation outcomes as the
// engine's feedback history.
type gormFeedbackSource struct {
	db *gorm.DB
}

var _ recommender.FeedbackSource = (*gormFeedbackSource)(nil)

func (s *gormFeedbackSource) AllFeedback(ctx context.Context) ([]recommender.FeedbackRecord, error) {
	var recs []models.Recommendation
	if err := s.db.WithContext(ctx).
		Where("rating IS NOT NULL OR is_consumed = ?", true).
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	return toFeedbackRecords(recs), nil
}

func (s *gormFeedbackSource) UserFeedback(ctx context.Context, userID uuid.UUID) ([]recommender.FeedbackRecord, error) {
	var recs []models.Recommendation
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND (rating IS NOT NULL OR is_consumed = ?)", userID, true).
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to load user feedback: %w", err)
	}
	return toFeedbackRecords(recs), nil
}

func toFeedbackRecords(recs []models.Recommendation) []recommender.FeedbackRecord {
	out := make([]recommender.FeedbackRecord, 0, len(recs))
	for _, r := range recs {
		rec := recommender.FeedbackRecord{
			UserID:   r.UserID,
			FoodID:   r.FoodID,
			Date:     r.RecommendationDate,
			Consumed: r.IsConsumed,
		}
		if r.Rating != nil {
			rec.Rating = *r.Rating
		}
		if r.FeedbackDate != nil {
			rec.FeedbackAt = *r.FeedbackDate
		}
		out = append(out, rec)
	}
	return out
}

// gormFoodSource serves the engine's widening queries from the
// catalog.
type gormFoodSource struct {
	foods IFoodService
}

var _ recommender.FoodSource = (*gormFoodSource)(nil)

func (s *gormFoodSource) FoodsByCalorieBand(ctx context.Context, minCal, maxCal float64) ([]recommender.FoodItem, error) {
	foods, err := s.foods.FoodsByCalorieBand(ctx, minCal, maxCal)
	if err != nil {
		return nil, err
	}
	out := make([]recommender.FoodItem, len(foods))
	for i, f := range foods {
		out[i] = foodToItem(f)
	}
	return out, nil
}
