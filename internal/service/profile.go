package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/types"
	"gorm.io/gorm"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db      *gorm.DB
	vectors *VectorService
}

var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance. The vector
// service may be nil when similarity vectors are not maintained.
func NewProfileService(db *gorm.DB, vectors *VectorService) *ProfileService {
	return &ProfileService{db: db, vectors: vectors}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies the provided physiology changes and refreshes
// the user's similarity vector, since BMI, age and activity all feed
// into it.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.WeightKg != nil {
		user.WeightKg = *req.WeightKg
	}
	if req.HeightCm != nil {
		user.HeightCm = *req.HeightCm
	}
	if req.ActivityLevel != nil {
		if !models.ValidActivityLevel(*req.ActivityLevel) {
			return nil, fmt.Errorf("unknown activity level %q", *req.ActivityLevel)
		}
		user.ActivityLevel = *req.ActivityLevel
	}
	if req.MedicalHistory != nil {
		user.MedicalHistory = *req.MedicalHistory
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if s.vectors != nil {
		if err := s.vectors.Refresh(ctx, userID); err != nil {
			// The vector is derived data; a refresh failure must not
			// fail the profile update.
			return &user, nil
		}
	}
	return &user, nil
}
