package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/saostartar/diet-recommendation-app/config"
	"github.com/saostartar/diet-recommendation-app/internal/database"
	"github.com/saostartar/diet-recommendation-app/internal/service"
)

// Loads the Indonesian food composition CSV into the catalog.
func main() {
	csvPath := flag.String("csv", "", "Path to the food composition CSV")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if *csvPath == "" {
		logger.Fatal().Msg("-csv is required")
	}

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

	count, err := service.NewFoodService(db).ImportCSV(context.Background(), *csvPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}

	logger.Info().Int("imported", count).Str("path", *csvPath).Msg("catalog import complete")
}
