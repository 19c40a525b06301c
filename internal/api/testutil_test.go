package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipe-planner/internal/api"
	"recipe-planner/internal/models"
	"recipe-planner/internal/router"
	"recipe-planner/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	db     *gorm.DB
	engine *gin.Engine
	auth   *service.AuthService
}

// newTestApp wires the full router against an in-memory database. The
// generator argument backs the generation endpoint; nil simulates a server
// booted without the credential.
func newTestApp(t *testing.T, generator service.RecipeGenerator) *testApp {
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

	logger := zap.NewNop()
	auth := service.NewAuthService(db, "test-secret")
	recipes := service.NewRecipeService(db, generator, logger)

	handlers := router.Handlers{
		Auth:             api.NewAuthHandler(auth),
		Ingredient:       api.NewIngredientHandler(db),
		Dietary:          api.NewDietaryPreferenceHandler(db),
		Recipe:           api.NewRecipeHandler(db),
		MealPlan:         api.NewMealPlanHandler(db),
		ShoppingListItem: api.NewShoppingListItemHandler(db),
		LLM:              api.NewLLMHandler(recipes, logger),
	}

	return &testApp{
		db:     db,
		engine: router.Setup(handlers, auth, logger),
		auth:   auth,
	}
}

// registerUser creates an account and returns its ID and a bearer token.
func (a *testApp) registerUser(t *testing.T, username string) (uuid.UUID, string) {
	token, err := a.auth.Register(username, username+"@example.com", "password123")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, a.db.Where("username = ?", username).First(&user).Error)
	return user.ID, token
}

func (a *testApp) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func (a *testApp) createRecipe(t *testing.T, userID uuid.UUID, title string, ingredients map[string]string) *models.Recipe {
	recipe := models.Recipe{
		UserID:       userID,
		Title:        title,
		Instructions: "Cook it.",
	}
	require.NoError(t, a.db.Create(&recipe).Error)

	for name, quantity := range ingredients {
		ingredient, err := service.GetOrCreateIngredient(a.db, name)
		require.NoError(t, err)
		link := models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ingredient.ID,
			Quantity:     quantity,
		}
		require.NoError(t, a.db.Create(&link).Error)
	}
	return &recipe
}
