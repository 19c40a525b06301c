package api

import (
	"time"

	"github.com/google/uuid"

	"recipe-planner/internal/models"
)

// RecipeIngredientResponse is one ingredient entry nested in a recipe
// representation.
type RecipeIngredientResponse struct {
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name"`
	Quantity       string    `json:"quantity"`
}

// RecipeResponse is the wire representation of a recipe with nested
// ingredient and dietary-preference data.
type RecipeResponse struct {
	ID                 uuid.UUID                  `json:"id"`
	UserID             uuid.UUID                  `json:"user_id"`
	Title              string                     `json:"title"`
	Instructions       string                     `json:"instructions"`
	CookingTimeMinutes *int                       `json:"cooking_time_minutes"`
	Cuisine            string                     `json:"cuisine"`
	DietaryPreferences []string                   `json:"dietary_preferences"`
	GeneratedByAI      bool                       `json:"generated_by_ai"`
	Ingredients        []RecipeIngredientResponse `json:"ingredients"`
}

func NewRecipeResponse(r models.Recipe) RecipeResponse {
	prefs := make([]string, 0, len(r.DietaryPreferences))
	for _, p := range r.DietaryPreferences {
		prefs = append(prefs, p.Name)
	}

	ingredients := make([]RecipeIngredientResponse, 0, len(r.RecipeIngredients))
	for _, ri := range r.RecipeIngredients {
		ingredients = append(ingredients, RecipeIngredientResponse{
			IngredientID:   ri.IngredientID,
			IngredientName: ri.Ingredient.Name,
			Quantity:       ri.Quantity,
		})
	}

	return RecipeResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		Title:              r.Title,
		Instructions:       r.Instructions,
		CookingTimeMinutes: r.CookingTimeMinutes,
		Cuisine:            r.Cuisine,
		DietaryPreferences: prefs,
		GeneratedByAI:      r.GeneratedByAI,
		Ingredients:        ingredients,
	}
}

func NewRecipeResponses(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, NewRecipeResponse(r))
	}
	return out
}

// MealPlanResponse is the wire representation of a meal plan with its
// recipes nested.
type MealPlanResponse struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Name      string           `json:"name"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Recipes   []RecipeResponse `json:"recipes"`
}

func NewMealPlanResponse(m models.MealPlan) MealPlanResponse {
	return MealPlanResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Recipes:   NewRecipeResponses(m.Recipes),
	}
}
