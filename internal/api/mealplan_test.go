package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-planner/internal/api"
	"recipe-planner/internal/models"
)

func TestMealPlanCreate(t *testing.T) {
	app := newTestApp(t, nil)
	aliceID, token := app.registerUser(t, "alice")
	recipe := app.createRecipe(t, aliceID, "Pasta", nil)

	w := app.request(t, http.MethodPost, "/api/v1/meal-plans", token, map[string]any{
		"name":       "Week 36",
		"start_date": "2026-08-31T00:00:00Z",
		"end_date":   "2026-09-06T00:00:00Z",
		"recipe_ids": []string{recipe.ID.String()},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	plan := decodeJSON[api.MealPlanResponse](t, w)
	assert.Equal(t, "Week 36", plan.Name)
	assert.Equal(t, aliceID, plan.UserID)
	require.Len(t, plan.Recipes, 1)
	assert.Equal(t, "Pasta", plan.Recipes[0].Title)
}

func TestMealPlanCreate_DefaultName(t *testing.T) {
	app := newTestApp(t, nil)
	_, token := app.registerUser(t, "alice")

	w := app.request(t, http.MethodPost, "/api/v1/meal-plans", token, map[string]any{
		"start_date": "2026-08-31T00:00:00Z",
		"end_date":   "2026-09-06T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "My Meal Plan", decodeJSON[api.MealPlanResponse](t, w).Name)
}

func TestMealPlanCreate_MissingDates(t *testing.T) {
	app := newTestApp(t, nil)
	_, token := app.registerUser(t, "alice")

	w := app.request(t, http.MethodPost, "/api/v1/meal-plans", token, map[string]any{
		"name": "No dates",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMealPlanCreate_RejectsForeignAndUnknownRecipes(t *testing.T) {
	app := newTestApp(t, nil)
	_, aliceToken := app.registerUser(t, "alice")
	bobID, _ := app.registerUser(t, "bob")
	bobRecipe := app.createRecipe(t, bobID, "Bob's Stew", nil)

	w := app.request(t, http.MethodPost, "/api/v1/meal-plans", aliceToken, map[string]any{
		"start_date": "2026-08-31T00:00:00Z",
		"end_date":   "2026-09-06T00:00:00Z",
		"recipe_ids": []string{bobRecipe.ID.String()},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.request(t, http.MethodPost, "/api/v1/meal-plans", aliceToken, map[string]any{
		"start_date": "2026-08-31T00:00:00Z",
		"end_date":   "2026-09-06T00:00:00Z",
		"recipe_ids": []string{uuid.New().String()},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMealPlanForeignAccessForbidden(t *testing.T) {
	app := newTestApp(t, nil)
	aliceID, _ := app.registerUser(t, "alice")
	_, bobToken := app.registerUser(t, "bob")

	plan := models.MealPlan{UserID: aliceID, Name: "Alice's Week"}
	require.NoError(t, app.db.Create(&plan).Error)
	path := "/api/v1/meal-plans/" + plan.ID.String()

	w := app.request(t, http.MethodGet, path, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.request(t, http.MethodDelete, path, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.request(t, http.MethodPost, path+"/shopping-list", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMealPlanUpdateReplacesRecipes(t *testing.T) {
	app := newTestApp(t, nil)
	aliceID, token := app.registerUser(t, "alice")
	first := app.createRecipe(t, aliceID, "Pasta", nil)
	second := app.createRecipe(t, aliceID, "Salad", nil)

	plan := models.MealPlan{UserID: aliceID, Name: "Week 36", Recipes: []models.Recipe{*first}}
	require.NoError(t, app.db.Create(&plan).Error)

	w := app.request(t, http.MethodPut, "/api/v1/meal-plans/"+plan.ID.String(), token, map[string]any{
		"name":       "Week 37",
		"start_date": "2026-09-07T00:00:00Z",
		"end_date":   "2026-09-13T00:00:00Z",
		"recipe_ids": []string{second.ID.String()},
	})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeJSON[api.MealPlanResponse](t, w)
	assert.Equal(t, "Week 37", updated.Name)
	require.Len(t, updated.Recipes, 1)
	assert.Equal(t, "Salad", updated.Recipes[0].Title)
}

func TestGenerateShoppingListAggregates(t *testing.T) {
	app := newTestApp(t, nil)
	aliceID, token := app.registerUser(t, "alice")

	omelette := app.createRecipe(t, aliceID, "Omelette", map[string]string{
		"eggs": "2",
		"milk": "a splash",
	})
	cake := app.createRecipe(t, aliceID, "Cake", map[string]string{
		"eggs":  "3",
		"flour": "2 cups",
	})

	plan := models.MealPlan{UserID: aliceID, Name: "Week 36", Recipes: []models.Recipe{*omelette, *cake}}
	require.NoError(t, app.db.Create(&plan).Error)

	w := app.request(t, http.MethodPost, "/api/v1/meal-plans/"+plan.ID.String()+"/shopping-list", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	items := decodeJSON[[]models.ShoppingListItem](t, w)
	require.Len(t, items, 3)

	byName := map[string]models.ShoppingListItem{}
	for _, item := range items {
		byName[item.Ingredient.Name] = item
	}

	// The shared ingredient appears once, with its quantities joined.
	eggs, ok := byName["eggs"]
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"2", "3"}, strings.Split(eggs.Quantity, ", "))
	assert.Equal(t, "a splash", byName["milk"].Quantity)
	assert.Equal(t, "2 cups", byName["flour"].Quantity)

	// Regenerating replaces the previous list instead of appending.
	w = app.request(t, http.MethodPost, "/api/v1/meal-plans/"+plan.ID.String()+"/shopping-list", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.ShoppingListItem{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestMealPlanDeleteRemovesItems(t *testing.T) {
	app := newTestApp(t, nil)
	aliceID, token := app.registerUser(t, "alice")
	recipe := app.createRecipe(t, aliceID, "Omelette", map[string]string{"eggs": "2"})

	plan := models.MealPlan{UserID: aliceID, Name: "Week 36", Recipes: []models.Recipe{*recipe}}
	require.NoError(t, app.db.Create(&plan).Error)

	w := app.request(t, http.MethodPost, "/api/v1/meal-plans/"+plan.ID.String()+"/shopping-list", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.request(t, http.MethodDelete, "/api/v1/meal-plans/"+plan.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var plans, items int64
	require.NoError(t, app.db.Model(&models.MealPlan{}).Count(&plans).Error)
	require.NoError(t, app.db.Model(&models.ShoppingListItem{}).Count(&items).Error)
	assert.Equal(t, int64(0), plans)
	assert.Equal(t, int64(0), items)

	// The recipe itself is untouched.
	var recipes int64
	require.NoError(t, app.db.Model(&models.Recipe{}).Count(&recipes).Error)
	assert.Equal(t, int64(1), recipes)
}
