package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/saostartar/diet-recommendation-app/internal/api"
	"github.com/saostartar/diet-recommendation-app/internal/middleware"
)

// Handlers bundles the API handlers the router mounts.
type Handlers struct {
	Auth            *api.AuthHandler
	Profile         *api.ProfileHandler
	Goals           *api.GoalHandler
	Preferences     *api.PreferenceHandler
	Foods           *api.FoodHandler
	Progress        *api.ProgressHandler
	Recommendations *api.RecommendationHandler
}

// SetupRouter configures the application routes.
func SetupRouter(
	h Handlers,
	validator middleware.TokenValidator,
	log zerolog.Logger,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	router.GET("/health", api.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		h.Profile.RegisterRoutes(protected)
		h.Goals.RegisterRoutes(protected)
		h.Preferences.RegisterRoutes(protected)
		h.Foods.RegisterRoutes(protected)
		h.Progress.RegisterRoutes(protected)
		h.Recommendations.RegisterRoutes(protected)
	}

	return router
}
