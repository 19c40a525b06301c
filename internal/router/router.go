package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-planner/internal/api"
	"recipe-planner/internal/middleware"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth             *api.AuthHandler
	Ingredient       *api.IngredientHandler
	Dietary          *api.DietaryPreferenceHandler
	Recipe           *api.RecipeHandler
	MealPlan         *api.MealPlanHandler
	ShoppingListItem *api.ShoppingListItemHandler
	LLM              *api.LLMHandler
}

// Setup configures the application routes. Ingredient and dietary-preference
// resources are shared reference data; everything else is scoped to the
// authenticated owner.
func Setup(h Handlers, validator middleware.TokenValidator, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")

	h.Auth.RegisterRoutes(v1)
	h.Ingredient.RegisterRoutes(v1)
	h.Dietary.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		h.Recipe.RegisterRoutes(protected)
		h.MealPlan.RegisterRoutes(protected)
		h.ShoppingListItem.RegisterRoutes(protected)
		h.LLM.RegisterRoutes(protected)
	}

	return router
}
