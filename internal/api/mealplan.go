package api

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipe-planner/internal/middleware"
	"recipe-planner/internal/models"
)

// MealPlanHandler exposes owner-scoped meal plan CRUD plus shopping-list
// derivation.
type MealPlanHandler struct {
	db *gorm.DB
}

func NewMealPlanHandler(db *gorm.DB) *MealPlanHandler {
	return &MealPlanHandler{db: db}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.GET("", h.List)
		plans.POST("", h.Create)
		plans.GET("/:id", h.Get)
		plans.PUT("/:id", h.Update)
		plans.DELETE("/:id", h.Delete)
		plans.POST("/:id/shopping-list", h.GenerateShoppingList)
	}
}

type mealPlanRequest struct {
	Name      string      `json:"name"`
	StartDate time.Time   `json:"start_date" binding:"required"`
	EndDate   time.Time   `json:"end_date" binding:"required"`
	RecipeIDs []uuid.UUID `json:"recipe_ids"`
}

func (h *MealPlanHandler) ownedPlan(c *gin.Context, userID uuid.UUID) (*models.MealPlan, bool) {
	var plan models.MealPlan
	err := h.db.
		Preload("Recipes.RecipeIngredients.Ingredient").
		Preload("Recipes.DietaryPreferences").
		First(&plan, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal plan"})
		}
		return nil, false
	}
	if plan.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this meal plan"})
		return nil, false
	}
	return &plan, true
}

// ownedRecipes resolves the requested recipe IDs, requiring every one to
// exist and belong to the requester.
func (h *MealPlanHandler) ownedRecipes(c *gin.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.Recipe, bool) {
	if len(ids) == 0 {
		return nil, true
	}

	var recipes []models.Recipe
	if err := h.db.Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return nil, false
	}
	if len(recipes) != len(ids) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one or more recipes do not exist"})
		return nil, false
	}
	for _, r := range recipes {
		if r.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only plan your own recipes"})
			return nil, false
		}
	}
	return recipes, true
}

func (h *MealPlanHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var plans []models.MealPlan
	err := h.db.
		Preload("Recipes.RecipeIngredients.Ingredient").
		Preload("Recipes.DietaryPreferences").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&plans).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal plans"})
		return
	}

	out := make([]MealPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, NewMealPlanResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *MealPlanHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipes, ok := h.ownedRecipes(c, userID, req.RecipeIDs)
	if !ok {
		return
	}

	name := req.Name
	if name == "" {
		name = "My Meal Plan"
	}

	plan := models.MealPlan{
		UserID:    userID,
		Name:      name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Recipes:   recipes,
	}
	if err := h.db.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create meal plan"})
		return
	}

	c.JSON(http.StatusCreated, NewMealPlanResponse(plan))
}

func (h *MealPlanHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	plan, ok := h.ownedPlan(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewMealPlanResponse(*plan))
}

func (h *MealPlanHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	plan, ok := h.ownedPlan(c, userID)
	if !ok {
		return
	}

	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipes, ok := h.ownedRecipes(c, userID, req.RecipeIDs)
	if !ok {
		return
	}

	if req.Name != "" {
		plan.Name = req.Name
	}
	plan.StartDate = req.StartDate
	plan.EndDate = req.EndDate

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(plan).Error; err != nil {
			return err
		}
		return tx.Model(plan).Association("Recipes").Replace(recipes)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meal plan"})
		return
	}

	plan.Recipes = recipes
	c.JSON(http.StatusOK, NewMealPlanResponse(*plan))
}

func (h *MealPlanHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	plan, ok := h.ownedPlan(c, userID)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_plan_id = ?", plan.ID).Delete(&models.ShoppingListItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(plan).Association("Recipes").Clear(); err != nil {
			return err
		}
		return tx.Delete(plan).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal plan"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateShoppingList rebuilds the plan's shopping list from the distinct
// ingredients of its recipes. Existing items are replaced; quantities for an
// ingredient appearing in several recipes are joined.
func (h *MealPlanHandler) GenerateShoppingList(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	plan, ok := h.ownedPlan(c, userID)
	if !ok {
		return
	}

	type aggregate struct {
		ingredientID uuid.UUID
		name         string
		quantities   []string
	}
	byIngredient := make(map[uuid.UUID]*aggregate)
	for _, recipe := range plan.Recipes {
		for _, ri := range recipe.RecipeIngredients {
			agg, exists := byIngredient[ri.IngredientID]
			if !exists {
				agg = &aggregate{ingredientID: ri.IngredientID, name: ri.Ingredient.Name}
				byIngredient[ri.IngredientID] = agg
			}
			agg.quantities = append(agg.quantities, ri.Quantity)
		}
	}

	aggregates := make([]*aggregate, 0, len(byIngredient))
	for _, agg := range byIngredient {
		aggregates = append(aggregates, agg)
	}
	sort.Slice(aggregates, func(i, j int) bool { return aggregates[i].name < aggregates[j].name })

	var items []models.ShoppingListItem
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_plan_id = ?", plan.ID).Delete(&models.ShoppingListItem{}).Error; err != nil {
			return err
		}
		for _, agg := range aggregates {
			item := models.ShoppingListItem{
				MealPlanID:   plan.ID,
				IngredientID: agg.ingredientID,
				Quantity:     strings.Join(agg.quantities, ", "),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate shopping list"})
		return
	}

	var out []models.ShoppingListItem
	if err := h.db.Preload("Ingredient").Where("meal_plan_id = ?", plan.ID).Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shopping list"})
		return
	}
	c.JSON(http.StatusCreated, out)
}
