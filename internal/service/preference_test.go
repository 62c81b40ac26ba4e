package service

import (
	"context"
	"testing"

	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplacePreferencesSwapsActiveSet(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewPreferenceService(db)
	user := createTestUser(t, db)
	ctx := context.Background()

	first, err := svc.ReplacePreferences(ctx, user.ID, []string{models.PrefHalal, models.PrefNutFree})
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.ReplacePreferences(ctx, user.ID, []string{models.PrefVegetarian})
	require.NoError(t, err)
	assert.Len(t, second, 1)

	active, err := svc.GetActivePreferences(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, models.PrefVegetarian, active[0].PreferenceType)

	// History rows survive deactivated.
	var total int64
	require.NoError(t, db.Model(&models.FoodPreference{}).
		Where("user_id = ?", user.ID).Count(&total).Error)
	assert.EqualValues(t, 3, total)
}

func TestReplacePreferencesEmptyClearsAll(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewPreferenceService(db)
	user := createTestUser(t, db)
	ctx := context.Background()

	_, err := svc.ReplacePreferences(ctx, user.ID, []string{models.PrefSeafoodFree})
	require.NoError(t, err)

	cleared, err := svc.ReplacePreferences(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, cleared)

	active, err := svc.GetActivePreferences(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestReplacePreferencesRejectsUnknownType(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewPreferenceService(db)
	user := createTestUser(t, db)

	_, err := svc.ReplacePreferences(context.Background(), user.ID, []string{"keto"})
	assert.Error(t, err)
}
