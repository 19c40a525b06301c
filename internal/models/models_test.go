package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&User{},
		&Ingredient{},
		&DietaryPreference{},
		&Recipe{},
		&RecipeIngredient{},
		&MealPlan{},
		&ShoppingListItem{},
	)
	require.NoError(t, err)
	return db
}

func TestBeforeCreateAssignsIDs(t *testing.T) {
	db := setupTestDB(t)

	user := User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", user.ID.String())

	recipe := Recipe{UserID: user.ID, Title: "Pie", Instructions: "Bake."}
	require.NoError(t, db.Create(&recipe).Error)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", recipe.ID.String())
}

func TestIngredientNameUnique(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&Ingredient{Name: "flour"}).Error)
	assert.Error(t, db.Create(&Ingredient{Name: "flour"}).Error)
}

func TestRecipeIngredientPairUnique(t *testing.T) {
	db := setupTestDB(t)

	user := User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	recipe := Recipe{UserID: user.ID, Title: "Pie", Instructions: "Bake."}
	require.NoError(t, db.Create(&recipe).Error)

	ingredient := Ingredient{Name: "flour"}
	require.NoError(t, db.Create(&ingredient).Error)

	first := RecipeIngredient{RecipeID: recipe.ID, IngredientID: ingredient.ID, Quantity: "2 cups"}
	require.NoError(t, db.Create(&first).Error)

	// The same ingredient cannot be listed twice on one recipe.
	dup := RecipeIngredient{RecipeID: recipe.ID, IngredientID: ingredient.ID, Quantity: "3 cups"}
	assert.Error(t, db.Create(&dup).Error)

	// But it can appear on a different recipe.
	other := Recipe{UserID: user.ID, Title: "Bread", Instructions: "Bake."}
	require.NoError(t, db.Create(&other).Error)
	ok := RecipeIngredient{RecipeID: other.ID, IngredientID: ingredient.ID, Quantity: "4 cups"}
	assert.NoError(t, db.Create(&ok).Error)
}

func TestMealPlanDefaultName(t *testing.T) {
	db := setupTestDB(t)

	user := User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	plan := MealPlan{UserID: user.ID}
	require.NoError(t, db.Create(&plan).Error)

	var stored MealPlan
	require.NoError(t, db.First(&stored, "id = ?", plan.ID).Error)
	assert.Equal(t, "My Meal Plan", stored.Name)
}
