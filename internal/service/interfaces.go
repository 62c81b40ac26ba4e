package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
}

// IGoalService defines the interface for diet goal operations
type IGoalService interface {
	CreateGoal(ctx context.Context, userID uuid.UUID, req *types.CreateGoalRequest) (*models.DietGoal, error)
	GetActiveGoal(ctx context.Context, userID uuid.UUID) (*models.DietGoal, error)
	CompleteGoal(ctx context.Context, userID, goalID uuid.UUID) (*models.DietGoal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*models.DietGoal, error)
}

// IPreferenceService defines the interface for dietary preference operations
type IPreferenceService interface {
	ReplacePreferences(ctx context.Context, userID uuid.UUID, preferences []string) ([]*models.FoodPreference, error)
	GetActivePreferences(ctx context.Context, userID uuid.UUID) ([]*models.FoodPreference, error)
}

// IFoodService defines the interface for catalog operations
type IFoodService interface {
	GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error)
	SearchFoods(ctx context.Context, query string, limit, offset int) ([]*models.Food, error)
	FoodsByCalorieBand(ctx context.Context, minCal, maxCal float64) ([]*models.Food, error)
	AttachImage(ctx context.Context, id uuid.UUID, url string) error
	ImportCSV(ctx context.Context, path string) (int, error)
}

// IProgressService defines the interface for weight tracking
type IProgressService interface {
	LogWeight(ctx context.Context, userID uuid.UUID, req *types.LogWeightRequest) (*models.WeightProgress, error)
	WeightHistory(ctx context.Context, userID uuid.UUID) (*types.WeightProgressResponse, error)
}

// IRecommendationService defines the interface for menu generation and feedback
type IRecommendationService interface {
	GenerateDailyMenu(ctx context.Context, userID uuid.UUID, date time.Time) (*types.DailyMenuResponse, error)
	GetDailyMenu(ctx context.Context, userID uuid.UUID, date time.Time) (*types.DailyMenuResponse, error)
	RecordFeedback(ctx context.Context, userID, recommendationID uuid.UUID, req *types.RecommendationFeedbackRequest) error
}

// IImageService defines the interface for image storage operations
type IImageService interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error)
	UploadFoodImage(ctx context.Context, foodID uuid.UUID, data []byte, contentType string) (string, error)
}
