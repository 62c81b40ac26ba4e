package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/saostartar/diet-recommendation-app/internal/models"
)

// RunMigrations brings the schema up to date. On PostgreSQL the
// pgvector extension is created first so the user_vectors table can
// hold embeddings; SQLite (used in tests) skips the vector table.
func RunMigrations(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Food{},
		&models.DietGoal{},
		&models.FoodPreference{},
		&models.Recommendation{},
		&models.WeightProgress{},
		&models.EngineWeights{},
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to create vector extension: %w", err)
		}
		tables = append(tables, &models.UserVector{})
	}

	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
