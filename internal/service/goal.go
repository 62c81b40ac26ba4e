package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/types"
	"gorm.io/gorm"
)

var (
	ErrNoActiveGoal = errors.New("no active diet goal")
	ErrGoalNotFound = errors.New("diet goal not found")
)

// GoalService manages the diet goal lifecycle. One goal per user is
// active at a time.
type GoalService struct {
	db      *gorm.DB
	vectors *VectorService
}

var _ IGoalService = (*GoalService)(nil)

func NewGoalService(db *gorm.DB, vectors *VectorService) *GoalService {
	return &GoalService{db: db, vectors: vectors}
}

// CreateGoal starts a new goal. Any existing active goal is abandoned
// inside the same transaction so the one-active invariant holds even
// under concurrent requests.
func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, req *types.CreateGoalRequest) (*models.DietGoal, error) {
	condition := req.MedicalCondition
	if condition == "" {
		condition = models.ConditionNone
	}
	if !models.ValidCondition(condition) {
		return nil, fmt.Errorf("unknown medical condition %q", condition)
	}

	goal := models.DietGoal{
		ID:               uuid.New(),
		UserID:           userID,
		TargetWeightKg:   req.TargetWeightKg,
		TargetDate:       req.TargetDate,
		MedicalCondition: condition,
		Status:           models.GoalStatusActive,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DietGoal{}).
			Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).
			Update("status", models.GoalStatusAbandoned).Error; err != nil {
			return fmt.Errorf("failed to abandon previous goal: %w", err)
		}
		if err := tx.Create(&goal).Error; err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.vectors != nil {
		// Best effort; the condition one-hot changed.
		_ = s.vectors.Refresh(ctx, userID)
	}
	return &goal, nil
}

// GetActiveGoal returns the user's single active goal.
func (s *GoalService) GetActiveGoal(ctx context.Context, userID uuid.UUID) (*models.DietGoal, error) {
	var goal models.DietGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveGoal
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active goal: %w", err)
	}
	return &goal, nil
}

// CompleteGoal marks the given goal completed. Only the owner's active
// goal can be completed.
func (s *GoalService) CompleteGoal(ctx context.Context, userID, goalID uuid.UUID) (*models.DietGoal, error) {
	var goal models.DietGoal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if goal.Status != models.GoalStatusActive {
		return nil, fmt.Errorf("goal is %s, only active goals can be completed", goal.Status)
	}

	goal.Status = models.GoalStatusCompleted
	if err := s.db.WithContext(ctx).Save(&goal).Error; err != nil {
		return nil, fmt.Errorf("failed to complete goal: %w", err)
	}
	return &goal, nil
}

// ListGoals returns all of the user's goals, newest first.
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*models.DietGoal, error) {
	var goals []models.DietGoal
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	out := make([]*models.DietGoal, len(goals))
	for i := range goals {
		out[i] = &goals[i]
	}
	return out, nil
}
