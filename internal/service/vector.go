package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/recommender"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VectorService maintains the persisted 7-dimensional similarity
// vectors backing nearest-neighbor queries. Vectors are derived data:
// any failure here is recoverable by another refresh.
type VectorService struct {
	db *gorm.DB
}

func NewVectorService(db *gorm.DB) *VectorService {
	return &VectorService{db: db}
}

// Refresh recomputes and upserts the user's vector from their current
// profile, active goal and rating history.
func (s *VectorService) Refresh(ctx context.Context, userID uuid.UUID) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to load user for vector refresh: %w", err)
	}

	condition := models.ConditionNone
	var goal models.DietGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).
		First(&goal).Error
	if err == nil {
		condition = goal.MedicalCondition
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load goal for vector refresh: %w", err)
	}

	var mean float64
	row := s.db.WithContext(ctx).Model(&models.Recommendation{}).
		Where("user_id = ? AND rating IS NOT NULL", userID).
		Select("COALESCE(AVG(rating), 0)").Row()
	if err := row.Scan(&mean); err != nil {
		return fmt.Errorf("failed to average ratings: %w", err)
	}

	profile := recommender.NeighborProfile{
		User: recommender.UserProfile{
			ID:            user.ID,
			Age:           user.Age,
			WeightKg:      user.WeightKg,
			HeightCm:      user.HeightCm,
			Gender:        recommender.Gender(user.Gender),
			ActivityLevel: recommender.ActivityLevel(user.ActivityLevel),
		},
		Condition: recommender.MedicalCondition(condition),
	}
	v := recommender.ProfileVector(profile, mean)

	embedding := make([]float32, len(v))
	for i, x := range v {
		embedding[i] = float32(x)
	}

	record := models.UserVector{
		UserID:    userID,
		Embedding: pgvector.NewVector(embedding),
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		return fmt.Errorf("failed to upsert user vector: %w", err)
	}
	return nil
}

// SimilarUsers returns the k nearest user IDs by cosine distance,
// excluding the user themselves. Requires the pgvector extension.
func (s *VectorService) SimilarUsers(ctx context.Context, userID uuid.UUID, k int) ([]uuid.UUID, error) {
	var self models.UserVector
	if err := s.db.WithContext(ctx).First(&self, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user vector: %w", err)
	}

	var neighbors []models.UserVector
	if err := s.db.WithContext(ctx).
		Where("user_id <> ?", userID).
		Order(clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{self.Embedding}}).
		Limit(k).
		Find(&neighbors).Error; err != nil {
		return nil, fmt.Errorf("failed to query similar users: %w", err)
	}

	out := make([]uuid.UUID, len(neighbors))
	for i, n := range neighbors {
		out[i] = n.UserID
	}
	return out, nil
}
