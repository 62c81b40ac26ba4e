package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saostartar/diet-recommendation-app/internal/api"
	"github.com/saostartar/diet-recommendation-app/internal/middleware"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/router"
	"github.com/saostartar/diet-recommendation-app/internal/service"
	"github.com/saostartar/diet-recommendation-app/internal/testhelpers"
	"github.com/saostartar/diet-recommendation-app/internal/types"
)

// newTestRouter wires the full HTTP surface against an in-memory
// database, without Redis or S3.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	return newTestRouterWithLimiter(t, nil)
}

func newTestRouterWithLimiter(t *testing.T, limiter *middleware.RateLimiter) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDB(t)
	authService := service.NewAuthService(db, "test-secret")
	profileService := service.NewProfileService(db, nil)
	goalService := service.NewGoalService(db, nil)
	preferenceService := service.NewPreferenceService(db)
	foodService := service.NewFoodService(db)
	progressService := service.NewProgressService(db)

	recommendationService, err := service.NewRecommendationService(
		db, nil, foodService, goalService, preferenceService, nil, "", zerolog.Nop(),
	)
	require.NoError(t, err)

	engine := router.SetupRouter(router.Handlers{
		Auth:            api.NewAuthHandler(authService),
		Profile:         api.NewProfileHandler(profileService, nil),
		Goals:           api.NewGoalHandler(goalService),
		Preferences:     api.NewPreferenceHandler(preferenceService),
		Foods:           api.NewFoodHandler(foodService, nil),
		Progress:        api.NewProgressHandler(progressService),
		Recommendations: api.NewRecommendationHandler(recommendationService, limiter),
	}, authService, zerolog.Nop())

	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	return rr
}

// registerUser registers through the API and returns the token.
func registerUser(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()
	rr := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Name:          "Dewi",
		Email:         email,
		Password:      "rahasia-banget",
		Age:           27,
		Gender:        "F",
		WeightKg:      58,
		HeightCm:      162,
		ActivityLevel: "light",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func seedTestFood(t *testing.T, db *gorm.DB, name string, cal, protein, carbs, fat float64) *models.Food {
	t.Helper()
	food := &models.Food{
		ID:         uuid.New(),
		Name:       name,
		FoodGroup:  "Makanan jadi",
		FoodStatus: models.FoodStatusPrepared,
		Calories:   &cal,
		Protein:    &protein,
		Carbs:      &carbs,
		Fat:        &fat,
		IsHalal:    true,
	}
	require.NoError(t, db.Create(food).Error)
	return food
}
