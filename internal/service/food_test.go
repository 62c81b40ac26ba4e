package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogCSV = `name,food_group,food_status,calories,protein,carbohydrates,fat,sodium,is_vegetarian
Nasi Putih,Bahan makanan sumber energi,Tunggal,175,3,40,0.3,2,1
Udang Goreng Tepung,Makanan jadi,Olahan,280,18,15,16,450,0
Susu Kedelai,Minuman,Olahan,90,6,8,3,30,1
,Makanan jadi,Olahan,100,1,2,3,4,0
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogCSV), 0o644))
	return path
}

func TestImportCSV(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()

	count, err := svc.ImportCSV(ctx, writeCatalog(t))
	require.NoError(t, err)
	// The row with an empty name is skipped.
	assert.Equal(t, 3, count)

	foods, err := svc.SearchFoods(ctx, "udang", 10, 0)
	require.NoError(t, err)
	require.Len(t, foods, 1)

	udang := foods[0]
	assert.Equal(t, "Udang Goreng Tepung", udang.Name)
	require.NotNil(t, udang.Calories)
	assert.InDelta(t, 280, *udang.Calories, 0.001)
	// Tagged from the name: seafood.
	assert.True(t, udang.ContainsSeafood)
	assert.False(t, udang.IsVegetarian)
}

func TestImportCSVTagsAllergensFromName(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, writeCatalog(t))
	require.NoError(t, err)

	foods, err := svc.SearchFoods(ctx, "susu kedelai", 10, 0)
	require.NoError(t, err)
	require.Len(t, foods, 1)

	// "Susu" marks dairy, "kedelai" marks soy.
	assert.True(t, foods[0].ContainsDairy)
	assert.True(t, foods[0].ContainsSoy)
}

func TestFoodsByCalorieBand(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, writeCatalog(t))
	require.NoError(t, err)

	foods, err := svc.FoodsByCalorieBand(ctx, 100, 200)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Nasi Putih", foods[0].Name)
}

func TestAttachImage(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()

	food := seedFood(t, db, "Pecel Lele", models.FoodStatusPrepared, 350, 25, 12, 20)
	require.NoError(t, svc.AttachImage(ctx, food.ID, "https://bucket.s3.amazonaws.com/foods/x.jpg"))

	reloaded, err := svc.GetFood(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/foods/x.jpg", reloaded.ImageURL)

	err = svc.AttachImage(ctx, uuid.New(), "https://bucket.s3.amazonaws.com/foods/y.jpg")
	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestSearchFoodsPagination(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, writeCatalog(t))
	require.NoError(t, err)

	page1, err := svc.SearchFoods(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := svc.SearchFoods(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}
