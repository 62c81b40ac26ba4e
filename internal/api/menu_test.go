package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saostartar/diet-recommendation-app/internal/types"
)

func createGoalViaAPI(t *testing.T, engine *gin.Engine, token string) {
	t.Helper()
	rr := doJSON(t, engine, http.MethodPost, "/api/v1/goals", token, types.CreateGoalRequest{
		TargetWeightKg:   55,
		TargetDate:       time.Now().AddDate(0, 3, 0),
		MedicalCondition: "none",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func seedMenuCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedTestFood(t, db, "Lontong Sayur", 220, 6, 35, 6)
	seedTestFood(t, db, "Gado Gado", 420, 16, 40, 18)
	seedTestFood(t, db, "Rawon Daging", 650, 35, 30, 38)
	seedTestFood(t, db, "Singkong Rebus", 150, 1.5, 36, 0.3)
}

func TestGoalLifecycleViaAPI(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := registerUser(t, engine, "dewi@example.com")

	// No goal yet.
	rr := doJSON(t, engine, http.MethodGet, "/api/v1/goals/active", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	createGoalViaAPI(t, engine, token)

	rr = doJSON(t, engine, http.MethodGet, "/api/v1/goals/active", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var goal struct {
		ID               uuid.UUID `json:"id"`
		MedicalCondition string    `json:"medical_condition"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &goal))
	assert.Equal(t, "none", goal.MedicalCondition)

	rr = doJSON(t, engine, http.MethodPost, "/api/v1/goals/"+goal.ID.String()+"/complete", token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, engine, http.MethodGet, "/api/v1/goals/active", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateGoalRejectsUnknownConditionViaAPI(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := registerUser(t, engine, "dewi@example.com")

	rr := doJSON(t, engine, http.MethodPost, "/api/v1/goals", token, types.CreateGoalRequest{
		TargetWeightKg:   55,
		TargetDate:       time.Now().AddDate(0, 3, 0),
		MedicalCondition: "gout",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPreferencesViaAPI(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := registerUser(t, engine, "dewi@example.com")

	rr := doJSON(t, engine, http.MethodPut, "/api/v1/preferences", token, types.UpdatePreferencesRequest{
		Preferences: []string{"halal", "seafood_free"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, engine, http.MethodGet, "/api/v1/preferences", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Preferences []struct {
			PreferenceType string `json:"preference_type"`
		} `json:"preferences"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Preferences, 2)
}

func TestPreferencesRejectUnknownTypeViaAPI(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := registerUser(t, engine, "dewi@example.com")

	rr := doJSON(t, engine, http.MethodPut, "/api/v1/preferences", token, types.UpdatePreferencesRequest{
		Preferences: []string{"keto"},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFoodSearchViaAPI(t *testing.T) {
	engine, db := newTestRouter(t)
	token := registerUser(t, engine, "dewi@example.com")
	seedMenuCatalog(t, db)

	rr := doJSON(t, engine, http.MethodGet, "/api/v1/foods?q=gado", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Foods []struct {
			ID   uuid.UUID `json:"id"`
			Name string    `json:"name"`
		} `json:"foods"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Foods, 1)
	assert.Equal(t, "Gado Gado", resp.Foods[0].Name)

	// Fetch the single food by id.
	rr = doJSON(t, engine, http.MethodGet, "/api/v1/foods/"+resp.Foods[0].ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, engine, http.MethodGet, "/api/v1/foods/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDailyMenuFlowViaAPI(t *testing.T) {
	engine, db := newTestRouter(t)
	token := registerUser(t, engine, "dewi@example.com")
	seedMenuCatalog(t, db)

	// Generation requires an active goal.
	rr := doJSON(t, engine, http.MethodPost, "/api/v1/recommendations/daily-menu?date=2025-03-10", token, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	createGoalViaAPI(t, engine, token)

	// No menu before generation.
	rr = doJSON(t, engine, http.MethodGet, "/api/v1/recommendations/daily-menu?date=2025-03-10", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, engine, http.MethodPost, "/api/v1/recommendations/daily-menu?date=2025-03-10", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var menu types.DailyMenuResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &menu))
	assert.Equal(t, "2025-03-10", menu.Date)
	assert.Greater(t, menu.DailyCalories, 0.0)

	items := append(append(append(menu.Breakfast, menu.Lunch...), menu.Dinner...), menu.Snacks...)
	require.NotEmpty(t, items)

	// Rate the first item.
	rating := 5
	rr = doJSON(t, engine, http.MethodPost,
		"/api/v1/recommendations/"+items[0].RecommendationID.String()+"/feedback", token,
		types.RecommendationFeedbackRequest{IsConsumed: true, Rating: &rating})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// The stored menu now carries the feedback.
	rr = doJSON(t, engine, http.MethodGet, "/api/v1/recommendations/daily-menu?date=2025-03-10", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &menu))

	rated := 0
	for _, item := range append(append(append(menu.Breakfast, menu.Lunch...), menu.Dinner...), menu.Snacks...) {
		if item.Rating != nil {
			rated++
			assert.True(t, item.IsConsumed)
		}
	}
	assert.Equal(t, 1, rated)
}

func TestFeedbackUnknownRecommendationViaAPI(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := registerUser(t, engine, "dewi@example.com")

	rr := doJSON(t, engine, http.MethodPost,
		"/api/v1/recommendations/"+uuid.NewString()+"/feedback", token,
		types.RecommendationFeedbackRequest{IsConsumed: true})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInvalidMenuDateViaAPI(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := registerUser(t, engine, "dewi@example.com")

	rr := doJSON(t, engine, http.MethodGet, "/api/v1/recommendations/daily-menu?date=10-03-2025", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
