package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipe-planner/internal/middleware"
	"recipe-planner/internal/models"
)

// RecipeHandler exposes owner-scoped recipe CRUD. Acting on another user's
// recipe is an authorization failure (403), not a 404.
type RecipeHandler struct {
	db *gorm.DB
}

func NewRecipeHandler(db *gorm.DB) *RecipeHandler {
	return &RecipeHandler{db: db}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.POST("", h.Create)
		recipes.GET("/:id", h.Get)
		recipes.PUT("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
	}
}

type recipeRequest struct {
	Title              string `json:"title" binding:"required,max=255"`
	Instructions       string `json:"instructions" binding:"required"`
	CookingTimeMinutes *int   `json:"cooking_time_minutes"`
	Cuisine            string `json:"cuisine" binding:"max=100"`
}

// ownedRecipe loads the recipe and enforces ownership. Writes the error
// response itself when the recipe is missing or foreign.
func (h *RecipeHandler) ownedRecipe(c *gin.Context, userID uuid.UUID) (*models.Recipe, bool) {
	var recipe models.Recipe
	err := h.db.
		Preload("RecipeIngredients.Ingredient").
		Preload("DietaryPreferences").
		First(&recipe, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		}
		return nil, false
	}
	if recipe.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this recipe"})
		return nil, false
	}
	return &recipe, true
}

func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var recipes []models.Recipe
	err := h.db.
		Preload("RecipeIngredients.Ingredient").
		Preload("DietaryPreferences").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, NewRecipeResponses(recipes))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := models.Recipe{
		UserID:             userID,
		Title:              req.Title,
		Instructions:       req.Instructions,
		CookingTimeMinutes: req.CookingTimeMinutes,
		Cuisine:            req.Cuisine,
		GeneratedByAI:      false,
	}
	if err := h.db.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, NewRecipeResponse(recipe))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, ok := h.ownedRecipe(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewRecipeResponse(*recipe))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, ok := h.ownedRecipe(c, userID)
	if !ok {
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe.Title = req.Title
	recipe.Instructions = req.Instructions
	recipe.CookingTimeMinutes = req.CookingTimeMinutes
	recipe.Cuisine = req.Cuisine

	if err := h.db.Save(recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}
	c.JSON(http.StatusOK, NewRecipeResponse(*recipe))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, ok := h.ownedRecipe(c, userID)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("DietaryPreferences").Clear(); err != nil {
			return err
		}
		// Remove the recipe from any meal plans referencing it.
		if err := tx.Exec("DELETE FROM meal_plan_recipes WHERE recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}
