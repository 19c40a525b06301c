package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"recipe-planner/config"
	"recipe-planner/internal/api"
	"recipe-planner/internal/database"
	"recipe-planner/internal/logging"
	"recipe-planner/internal/router"
	"recipe-planner/internal/server"
	"recipe-planner/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, generation responses will not be cached", zap.Error(err))
		redisClient = nil
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)

	// A missing credential is reported per request rather than refusing to
	// boot; every other endpoint still works without it.
	var generator service.RecipeGenerator
	llmService, err := service.NewLLMService(cfg, redisClient, logger)
	if err != nil {
		logger.Warn("generation service disabled", zap.Error(err))
	} else {
		generator = llmService
	}
	recipeService := service.NewRecipeService(db, generator, logger)

	handlers := router.Handlers{
		Auth:             api.NewAuthHandler(authService),
		Ingredient:       api.NewIngredientHandler(db),
		Dietary:          api.NewDietaryPreferenceHandler(db),
		Recipe:           api.NewRecipeHandler(db),
		MealPlan:         api.NewMealPlanHandler(db),
		ShoppingListItem: api.NewShoppingListItemHandler(db),
		LLM:              api.NewLLMHandler(recipeService, logger),
	}

	srv := server.New(cfg, router.Setup(handlers, authService, logger), logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
