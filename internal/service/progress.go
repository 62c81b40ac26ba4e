package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/types"
	"gorm.io/gorm"
)

// progressWindowDays bounds how far back the weight history reaches.
const progressWindowDays = 30

// ProgressService tracks weigh-ins against the active goal.
type ProgressService struct {
	db *gorm.DB
}

var _ IProgressService = (*ProgressService)(nil)

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// LogWeight records today's weight. A second log on the same day
// overwrites the earlier one.
func (s *ProgressService) LogWeight(ctx context.Context, userID uuid.UUID, req *types.LogWeightRequest) (*models.WeightProgress, error) {
	day := dateOnly(time.Now())

	var entry models.WeightProgress
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&entry).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.WeightProgress{
			ID:       uuid.New(),
			UserID:   userID,
			Date:     day,
			WeightKg: req.WeightKg,
			Notes:    req.Notes,
		}
		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			return nil, fmt.Errorf("failed to log weight: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load weight entry: %w", err)
	default:
		entry.WeightKg = req.WeightKg
		entry.Notes = req.Notes
		if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
			return nil, fmt.Errorf("failed to update weight entry: %w", err)
		}
	}
	return &entry, nil
}

// WeightHistory returns the last 30 days of weigh-ins plus the active
// goal's target, when one exists.
func (s *ProgressService) WeightHistory(ctx context.Context, userID uuid.UUID) (*types.WeightProgressResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	since := dateOnly(time.Now()).AddDate(0, 0, -progressWindowDays)
	var entries []models.WeightProgress
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load weight history: %w", err)
	}

	resp := &types.WeightProgressResponse{
		StartingWeightKg: user.WeightKg,
		CurrentWeightKg:  user.WeightKg,
		Entries:          make([]types.WeightEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, types.WeightEntryResponse{
			Date:     e.Date.Format("2006-01-02"),
			WeightKg: e.WeightKg,
			Notes:    e.Notes,
		})
	}
	if len(entries) > 0 {
		resp.CurrentWeightKg = entries[len(entries)-1].WeightKg
	}

	var goal models.DietGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).
		First(&goal).Error
	if err == nil {
		resp.TargetWeightKg = &goal.TargetWeightKg
		targetDate := goal.TargetDate.Format("2006-01-02")
		resp.TargetDate = &targetDate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load active goal: %w", err)
	}
	return resp, nil
}
