package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/saostartar/diet-recommendation-app/config"
	"github.com/saostartar/diet-recommendation-app/internal/api"
	"github.com/saostartar/diet-recommendation-app/internal/database"
	"github.com/saostartar/diet-recommendation-app/internal/middleware"
	"github.com/saostartar/diet-recommendation-app/internal/router"
	"github.com/saostartar/diet-recommendation-app/internal/server"
	"github.com/saostartar/diet-recommendation-app/internal/service"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate schema")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, continuing without cache and rate limiting")
		redisClient = nil
	}

	vectors := service.NewVectorService(db)
	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db, vectors)
	goalService := service.NewGoalService(db, vectors)
	preferenceService := service.NewPreferenceService(db)
	foodService := service.NewFoodService(db)
	progressService := service.NewProgressService(db)

	var imageService service.IImageService
	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("s3 unavailable, image uploads disabled")
	} else if s3cfg != nil {
		// Uploaded images are served by their public object URLs.
		if err := s3cfg.SetupBucketPolicy(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to apply bucket policy")
		}
		imageService = service.NewImageService(s3cfg)
	}

	recommendationService, err := service.NewRecommendationService(
		db, redisClient, foodService, goalService, preferenceService,
		vectors, cfg.SlotModelPath, logger,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build recommendation service")
	}

	var menuLimiter *middleware.RateLimiter
	if redisClient != nil {
		menuLimiter = middleware.NewMenuGenerationRateLimiter(redisClient)
	}

	engine := router.SetupRouter(router.Handlers{
		Auth:            api.NewAuthHandler(authService),
		Profile:         api.NewProfileHandler(profileService, imageService),
		Goals:           api.NewGoalHandler(goalService),
		Preferences:     api.NewPreferenceHandler(preferenceService),
		Foods:           api.NewFoodHandler(foodService, imageService),
		Progress:        api.NewProgressHandler(progressService),
		Recommendations: api.NewRecommendationHandler(recommendationService, menuLimiter),
	}, authService, logger)

	srv := server.New(engine, logger)
	if err := srv.Start(cfg.ServerHost + ":" + cfg.ServerPort); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
}
