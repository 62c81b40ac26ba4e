package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/recommender"
	"github.com/saostartar/diet-recommendation-app/internal/types"
	"gorm.io/gorm"
)

var (
	ErrMenuNotFound           = errors.New("no menu generated for this date")
	ErrRecommendationNotFound = errors.New("recommendation not found")
)

// menuCacheTTL bounds how long a generated menu is served from cache.
const menuCacheTTL = 24 * time.Hour

// RecommendationService orchestrates the engine: it assembles the
// request from persisted state, runs the engine, persists the selected
// menu and serves it back with feedback state.
type RecommendationService struct {
	db      *gorm.DB
	cache   *redis.Client
	engine  *recommender.Engine
	goals   IGoalService
	prefs   IPreferenceService
	vectors *VectorService
	log     zerolog.Logger
}

var _ IRecommendationService = (*RecommendationService)(nil)

// NewRecommendationService wires the engine against the database. A
// slot model artifact path may be empty, in which case the heuristic
// classifier is used. Cache may be nil; menus are then always rebuilt
// from the database.
func NewRecommendationService(
	db *gorm.DB,
	cache *redis.Client,
	foods IFoodService,
	goals IGoalService,
	prefs IPreferenceService,
	vectors *VectorService,
	slotModelPath string,
	logger zerolog.Logger,
) (*RecommendationService, error) {
	var classifier recommender.SlotClassifier
	if slotModelPath != "" {
		model, err := recommender.LoadSlotModel(slotModelPath)
		if err != nil {
			logger.Warn().Err(err).
				Str("path", slotModelPath).
				Msg("slot model unavailable, using heuristic classifier")
		} else {
			classifier = recommender.NewModelClassifier(model, nil)
		}
	}

	engine, err := recommender.NewEngine(
		&gormUserSource{db: db},
		&gormFoodSource{foods: foods},
		&gormFeedbackSource{db: db},
		NewGormWeightStore(db),
		recommender.Options{
			Classifier: classifier,
			Logger:     logger,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	return &RecommendationService{
		db:      db,
		cache:   cache,
		engine:  engine,
		goals:   goals,
		prefs:   prefs,
		vectors: vectors,
		log:     logger,
	}, nil
}

// GenerateDailyMenu builds, persists and returns the menu for the
// date. Existing rows for that date are replaced.
func (s *RecommendationService) GenerateDailyMenu(ctx context.Context, userID uuid.UUID, date time.Time) (*types.DailyMenuResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	goal, err := s.goals.GetActiveGoal(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefs.GetActivePreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefTypes := make([]recommender.Preference, len(prefs))
	for i, p := range prefs {
		prefTypes[i] = recommender.Preference(p.PreferenceType)
	}

	var foods []models.Food
	if err := s.db.WithContext(ctx).Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	candidates := make([]recommender.FoodItem, len(foods))
	for i := range foods {
		candidates[i] = foodToItem(&foods[i])
	}

	menu, err := s.engine.Recommend(ctx, recommender.Request{
		User: recommender.UserProfile{
			ID:            user.ID,
			Age:           user.Age,
			WeightKg:      user.WeightKg,
			HeightCm:      user.HeightCm,
			Gender:        recommender.Gender(user.Gender),
			ActivityLevel: recommender.ActivityLevel(user.ActivityLevel),
		},
		Goal: recommender.DietGoal{
			UserID:           userID,
			TargetWeightKg:   goal.TargetWeightKg,
			TargetDate:       goal.TargetDate,
			MedicalCondition: recommender.MedicalCondition(goal.MedicalCondition),
		},
		Preferences: prefTypes,
		Candidates:  candidates,
		Now:         date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	day := dateOnly(date)
	rows := make([]models.Recommendation, 0, len(menu.Items()))
	for _, item := range menu.Items() {
		rows = append(rows, models.Recommendation{
			ID:                 uuid.New(),
			UserID:             userID,
			FoodID:             item.Food.ID,
			Score:              item.TotalScore,
			NutritionScore:     item.NutritionScore,
			CFScore:            item.CFScore,
			MedicalBonus:       item.MedicalBonus,
			PreparationScore:   item.PreparationScore,
			RecommendationDate: day,
			MealSlot:           string(item.Slot),
			FoodStatus:         string(item.Food.FoodStatus),
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND recommendation_date = ?", userID, day).
			Delete(&models.Recommendation{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous menu: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to persist menu: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("date", day.Format("2006-01-02")).
		Int("items", len(rows)).
		Msg("daily menu generated")

	resp, err := s.loadMenuResponse(ctx, userID, day, &menu.Needs)
	if err != nil {
		return nil, err
	}
	s.cacheMenu(ctx, userID, day, resp)
	return resp, nil
}

// GetDailyMenu returns the already generated menu for the date, from
// cache when possible.
func (s *RecommendationService) GetDailyMenu(ctx context.Context, userID uuid.UUID, date time.Time) (*types.DailyMenuResponse, error) {
	day := dateOnly(date)

	if cached := s.cachedMenu(ctx, userID, day); cached != nil {
		return cached, nil
	}

	resp, err := s.loadMenuResponse(ctx, userID, day, nil)
	if err != nil {
		return nil, err
	}
	s.cacheMenu(ctx, userID, day, resp)
	return resp, nil
}

// RecordFeedback stores consumption state and an optional rating,
// adapts the user's fusion weights and refreshes derived data.
func (s *RecommendationService) RecordFeedback(ctx context.Context, userID, recommendationID uuid.UUID, req *types.RecommendationFeedbackRequest) error {
	var rec models.Recommendation
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recommendationID, userID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecommendationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load recommendation: %w", err)
	}

	// Adapt before the new rating is stored, so the prior-rating
	// threshold counts earlier feedback only.
	if req.Rating != nil {
		if _, err := s.engine.UpdateWeights(ctx, userID, rec.FoodID, *req.Rating); err != nil {
			// Weight adaptation is best effort.
			s.log.Warn().Err(err).
				Str("user_id", userID.String()).
				Msg("weight adaptation failed")
		}
	}

	now := time.Now()
	rec.IsConsumed = req.IsConsumed
	if req.Rating != nil {
		rec.Rating = req.Rating
	}
	rec.FeedbackDate = &now
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	if req.Rating != nil && s.vectors != nil {
		_ = s.vectors.Refresh(ctx, userID)
	}

	s.invalidateMenu(ctx, userID, rec.RecommendationDate)
	return nil
}

// loadMenuResponse builds the grouped response from persisted rows.
// Needs may be nil when serving an existing menu; the macro targets
// are then recomputed from the active goal.
func (s *RecommendationService) loadMenuResponse(ctx context.Context, userID uuid.UUID, day time.Time, needs *recommender.NutritionalNeeds) (*types.DailyMenuResponse, error) {
	var rows []models.Recommendation
	if err := s.db.WithContext(ctx).
		Preload("Food").
		Where("user_id = ? AND recommendation_date = ?", userID, day).
		Order("score DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrMenuNotFound
	}

	if needs == nil {
		var user models.User
		if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		goal, err := s.goals.GetActiveGoal(ctx, userID)
		if err == nil {
			n := recommender.CalculateNeeds(
				recommender.UserProfile{
					ID:            user.ID,
					Age:           user.Age,
					WeightKg:      user.WeightKg,
					HeightCm:      user.HeightCm,
					Gender:        recommender.Gender(user.Gender),
					ActivityLevel: recommender.ActivityLevel(user.ActivityLevel),
				},
				recommender.DietGoal{
					UserID:           userID,
					TargetWeightKg:   goal.TargetWeightKg,
					TargetDate:       goal.TargetDate,
					MedicalCondition: recommender.MedicalCondition(goal.MedicalCondition),
				},
			)
			needs = &n
		}
	}

	resp := &types.DailyMenuResponse{Date: day.Format("2006-01-02")}
	if needs != nil {
		resp.DailyCalories = needs.DailyCalories
		resp.ProteinGrams = needs.ProteinGrams
		resp.CarbGrams = needs.CarbGrams
		resp.FatGrams = needs.FatGrams
	}

	for _, row := range rows {
		item := types.MenuItemResponse{
			RecommendationID: row.ID,
			Score:            row.Score,
			MealSlot:         row.MealSlot,
			IsConsumed:       row.IsConsumed,
			Rating:           row.Rating,
		}
		if row.Food != nil {
			item.Food = types.FoodResponse{
				ID:         row.Food.ID,
				Name:       row.Food.Name,
				FoodGroup:  row.Food.FoodGroup,
				FoodStatus: row.Food.FoodStatus,
				Calories:   row.Food.Calories,
				Protein:    row.Food.Protein,
				Carbs:      row.Food.Carbs,
				Fat:        row.Food.Fat,
				ImageURL:   row.Food.ImageURL,
			}
		}
		switch row.MealSlot {
		case models.SlotBreakfast:
			resp.Breakfast = append(resp.Breakfast, item)
		case models.SlotLunch:
			resp.Lunch = append(resp.Lunch, item)
		case models.SlotDinner:
			resp.Dinner = append(resp.Dinner, item)
		default:
			resp.Snacks = append(resp.Snacks, item)
		}
	}
	return resp, nil
}

func menuCacheKey(userID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("menu:%s:%s", userID, day.Format("2006-01-02"))
}

func (s *RecommendationService) cachedMenu(ctx context.Context, userID uuid.UUID, day time.Time) *types.DailyMenuResponse {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, menuCacheKey(userID, day)).Bytes()
	if err != nil {
		return nil
	}
	var resp types.DailyMenuResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *RecommendationService) cacheMenu(ctx context.Context, userID uuid.UUID, day time.Time, resp *types.DailyMenuResponse) {
	if s.cache == nil || resp == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, menuCacheKey(userID, day), data, menuCacheTTL).Err(); err != nil {
		s.log.Debug().Err(err).Msg("menu cache write failed")
	}
}

func (s *RecommendationService) invalidateMenu(ctx context.Context, userID uuid.UUID, day time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, menuCacheKey(userID, day)).Err(); err != nil {
		s.log.Debug().Err(err).Msg("menu cache invalidation failed")
	}
}

// dateOnly truncates to midnight UTC so date equality matches the
// date column.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
