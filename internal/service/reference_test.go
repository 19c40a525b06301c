package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipe-planner/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.DietaryPreference{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.MealPlan{},
		&models.ShoppingListItem{},
	)
	require.NoError(t, err)
	return db
}

func TestGetOrCreateIngredient(t *testing.T) {
	db := setupTestDB(t)

	first, err := GetOrCreateIngredient(db, "flour")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := GetOrCreateIngredient(db, "flour")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateDietaryPreference(t *testing.T) {
	db := setupTestDB(t)

	first, err := GetOrCreateDietaryPreference(db, "Vegan")
	require.NoError(t, err)

	second, err := GetOrCreateDietaryPreference(db, "Vegan")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.DietaryPreference{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"vegan", "Vegan"},
		{"GLUTEN-FREE", "Gluten-free"},
		{"Vegetarian", "Vegetarian"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in))
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"eggs", "flour", "milk"}, SplitList(" eggs, flour ,milk"))
	assert.Equal(t, []string{"salt"}, SplitList("salt,, ,"))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
}
