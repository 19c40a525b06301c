package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-planner/internal/middleware"
	"recipe-planner/internal/service"
)

// LLMHandler exposes the AI recipe generation endpoint.
type LLMHandler struct {
	recipes *service.RecipeService
	logger  *zap.Logger
}

func NewLLMHandler(recipes *service.RecipeService, logger *zap.Logger) *LLMHandler {
	return &LLMHandler{recipes: recipes, logger: logger}
}

func (h *LLMHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate-recipe", h.GenerateRecipe)
}

type generateRecipeRequest struct {
	Ingredients        string `json:"ingredients"`
	DietaryPreferences string `json:"dietary_preferences"`
	CookingTime        string `json:"cooking_time"`
	Cuisine            string `json:"cuisine"`
	NumRecipes         int    `json:"num_recipes"`
}

// GenerateRecipe proxies the caller's constraints to the generation service
// and persists the returned batch. The batch is all-or-nothing: one invalid
// generated recipe discards them all.
func (h *LLMHandler) GenerateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req generateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.GenerateParams{
		Ingredients:        req.Ingredients,
		DietaryPreferences: req.DietaryPreferences,
		CookingTime:        req.CookingTime,
		Cuisine:            req.Cuisine,
		NumRecipes:         req.NumRecipes,
	}

	recipes, err := h.recipes.GenerateAndSave(c.Request.Context(), userID, params)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRecipeResponses(recipes))
}

func (h *LLMHandler) respondGenerationError(c *gin.Context, err error) {
	var verr *service.ValidationError

	switch {
	case errors.Is(err, service.ErrAPIKeyMissing):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation service credential not configured on the server"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "failed to validate generated recipe data",
			"recipe": verr.Position,
			"fields": verr.Fields,
		})
	case errors.Is(err, service.ErrServiceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.logger.Error("recipe generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate recipes"})
	}
}
