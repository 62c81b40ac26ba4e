package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/recommender"
	"github.com/saostartar/diet-recommendation-app/internal/testhelpers"
	"github.com/saostartar/diet-recommendation-app/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecommendationService(t *testing.T, db *gorm.DB) *RecommendationService {
	t.Helper()
	svc, err := NewRecommendationService(
		db,
		nil,
		NewFoodService(db),
		NewGoalService(db, nil),
		NewPreferenceService(db),
		nil,
		"",
		zerolog.Nop(),
	)
	require.NoError(t, err)
	return svc
}

func seedFood(t *testing.T, db *gorm.DB, name, status string, cal, protein, carbs, fat float64) *models.Food {
	t.Helper()
	food := &models.Food{
		ID:         uuid.New(),
		Name:       name,
		FoodGroup:  "Makanan jadi",
		FoodStatus: status,
		Calories:   &cal,
		Protein:    &protein,
		Carbs:      &carbs,
		Fat:        &fat,
		IsHalal:    true,
	}
	require.NoError(t, db.Create(food).Error)
	return food
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedFood(t, db, "Lontong Sayur", models.FoodStatusPrepared, 220, 6, 35, 6)
	seedFood(t, db, "Gado Gado", models.FoodStatusPrepared, 420, 16, 40, 18)
	seedFood(t, db, "Rawon Daging", models.FoodStatusPrepared, 650, 35, 30, 38)
	seedFood(t, db, "Singkong Rebus", models.FoodStatusSingle, 150, 1.5, 36, 0.3)
}

func TestGenerateDailyMenuPersistsAndServes(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := newRecommendationService(t, db)
	user := createTestUser(t, db)
	ctx := context.Background()

	goals := NewGoalService(db, nil)
	_, err := goals.CreateGoal(ctx, user.ID, goalRequest(72, models.ConditionNone))
	require.NoError(t, err)
	seedCatalog(t, db)

	date := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	resp, err := svc.GenerateDailyMenu(ctx, user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Greater(t, resp.DailyCalories, 0.0)

	total := len(resp.Breakfast) + len(resp.Lunch) + len(resp.Dinner) + len(resp.Snacks)
	assert.Greater(t, total, 0)

	var rows int64
	require.NoError(t, db.Model(&models.Recommendation{}).
		Where("user_id = ?", user.ID).Count(&rows).Error)
	assert.EqualValues(t, total, rows)

	// The persisted total is the weighted blend of the stored
	// component scores.
	var persisted []models.Recommendation
	require.NoError(t, db.Find(&persisted, "user_id = ?", user.ID).Error)
	weights := recommender.DefaultFusionWeights()
	for _, row := range persisted {
		blended := recommender.Fuse(weights,
			row.NutritionScore, row.CFScore, row.MedicalBonus, row.PreparationScore)
		assert.InDelta(t, blended, row.Score, 1e-9)
		assert.Greater(t, row.NutritionScore, 0.0)
	}

	// Serving the same date reads the persisted rows back.
	served, err := svc.GetDailyMenu(ctx, user.ID, date)
	require.NoError(t, err)
	servedTotal := len(served.Breakfast) + len(served.Lunch) + len(served.Dinner) + len(served.Snacks)
	assert.Equal(t, total, servedTotal)
}

func TestGenerateDailyMenuReplacesPreviousRun(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := newRecommendationService(t, db)
	user := createTestUser(t, db)
	ctx := context.Background()

	goals := NewGoalService(db, nil)
	_, err := goals.CreateGoal(ctx, user.ID, goalRequest(72, models.ConditionNone))
	require.NoError(t, err)
	seedCatalog(t, db)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	first, err := svc.GenerateDailyMenu(ctx, user.ID, date)
	require.NoError(t, err)
	_, err = svc.GenerateDailyMenu(ctx, user.ID, date)
	require.NoError(t, err)

	var rows int64
	require.NoError(t, db.Model(&models.Recommendation{}).
		Where("user_id = ?", user.ID).Count(&rows).Error)
	firstTotal := len(first.Breakfast) + len(first.Lunch) + len(first.Dinner) + len(first.Snacks)
	assert.EqualValues(t, firstTotal, rows)
}

func TestGenerateDailyMenuRequiresActiveGoal(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := newRecommendationService(t, db)
	user := createTestUser(t, db)
	seedCatalog(t, db)

	_, err := svc.GenerateDailyMenu(context.Background(), user.ID, time.Now())
	assert.ErrorIs(t, err, ErrNoActiveGoal)
}

func TestGetDailyMenuBeforeGeneration(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := newRecommendationService(t, db)
	user := createTestUser(t, db)

	_, err := svc.GetDailyMenu(context.Background(), user.ID, time.Now())
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestRecordFeedback(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := newRecommendationService(t, db)
	user := createTestUser(t, db)
	ctx := context.Background()

	goals := NewGoalService(db, nil)
	_, err := goals.CreateGoal(ctx, user.ID, goalRequest(72, models.ConditionNone))
	require.NoError(t, err)
	seedCatalog(t, db)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err = svc.GenerateDailyMenu(ctx, user.ID, date)
	require.NoError(t, err)

	var rec models.Recommendation
	require.NoError(t, db.First(&rec, "user_id = ?", user.ID).Error)

	rating := 5
	err = svc.RecordFeedback(ctx, user.ID, rec.ID, &types.RecommendationFeedbackRequest{
		IsConsumed: true,
		Rating:     &rating,
	})
	require.NoError(t, err)

	var reloaded models.Recommendation
	require.NoError(t, db.First(&reloaded, "id = ?", rec.ID).Error)
	assert.True(t, reloaded.IsConsumed)
	require.NotNil(t, reloaded.Rating)
	assert.Equal(t, 5, *reloaded.Rating)
	assert.NotNil(t, reloaded.FeedbackDate)
}

func TestRecordFeedbackAdaptsWeightsAfterEnoughPriorRatings(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := newRecommendationService(t, db)
	user := createTestUser(t, db)
	food := seedFood(t, db, "Gado Gado", models.FoodStatusPrepared, 420, 16, 40, 18)
	ctx := context.Background()

	recs := make([]models.Recommendation, 3)
	for i := range recs {
		recs[i] = models.Recommendation{
			ID:                 uuid.New(),
			UserID:             user.ID,
			FoodID:             food.ID,
			Score:              0.7,
			RecommendationDate: time.Date(2025, 3, 10+i, 0, 0, 0, 0, time.UTC),
			MealSlot:           models.SlotLunch,
		}
		require.NoError(t, db.Create(&recs[i]).Error)
	}

	store := NewGormWeightStore(db)
	rate := func(recID uuid.UUID) {
		rating := 5
		require.NoError(t, svc.RecordFeedback(ctx, user.ID, recID, &types.RecommendationFeedbackRequest{
			IsConsumed: true,
			Rating:     &rating,
		}))
	}

	defaults := recommender.DefaultFusionWeights()

	// First and second rating of the food: zero and one prior rating,
	// both below the adaptation threshold.
	rate(recs[0].ID)
	w, err := store.Load(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, defaults.CF, w.CF, 1e-9)

	rate(recs[1].ID)
	w, err = store.Load(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, defaults.CF, w.CF, 1e-9)

	// Third rating sees two prior ratings and shifts weight toward
	// the collaborative signal.
	rate(recs[2].ID)
	w, err = store.Load(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, defaults.CF+0.05, w.CF, 1e-9)
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
}

func TestRecordFeedbackUnknownRecommendation(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := newRecommendationService(t, db)
	user := createTestUser(t, db)

	err := svc.RecordFeedback(context.Background(), user.ID, uuid.New(), &types.RecommendationFeedbackRequest{IsConsumed: true})
	assert.ErrorIs(t, err, ErrRecommendationNotFound)
}
