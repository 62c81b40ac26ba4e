package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/saostartar/diet-recommendation-app/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupSQLiteDB returns an in-memory database with the schema
// migrated, for fast unit tests that don't touch pgvector. The
// UserVector model needs the vector extension and is excluded here.
func SetupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One named in-memory database per test keeps parallel tests
	// isolated while letting gorm's pool share the connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Food{},
		&models.DietGoal{},
		&models.FoodPreference{},
		&models.Recommendation{},
		&models.WeightProgress{},
		&models.EngineWeights{},
	); err != nil {
		t.Fatalf("failed to migrate sqlite schema: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
