package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-planner/internal/models"
)

// RecipeGenerator produces structured recipes from a free-text request.
// Satisfied by LLMService; tests substitute their own.
type RecipeGenerator interface {
	GenerateRecipes(ctx context.Context, params GenerateParams) ([]GeneratedRecipe, error)
}

// ValidationError reports which generated recipe failed schema validation
// and which of its fields were rejected. Position is 1-based within the
// batch.
type ValidationError struct {
	Position int
	Fields   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("generated recipe %d failed validation: %s",
		e.Position, strings.Join(e.Fields, ", "))
}

// RecipeService maps generation responses onto the domain model.
type RecipeService struct {
	db        *gorm.DB
	generator RecipeGenerator
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewRecipeService(db *gorm.DB, generator RecipeGenerator, logger *zap.Logger) *RecipeService {
	validate := validator.New()
	// Report JSON field names in validation errors.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RecipeService{
		db:        db,
		generator: generator,
		validate:  validate,
		logger:    logger,
	}
}

// GenerateAndSave requests a batch of recipes from the generation service
// and persists them for the given user. The batch is atomic: the first
// recipe that fails schema validation, or any storage failure, discards
// every recipe in the batch. All created recipes carry the AI flag and the
// caller's dietary-preference set.
func (s *RecipeService) GenerateAndSave(ctx context.Context, userID uuid.UUID, params GenerateParams) ([]models.Recipe, error) {
	if s.generator == nil {
		return nil, ErrAPIKeyMissing
	}

	generated, err := s.generator.GenerateRecipes(ctx, params)
	if err != nil {
		return nil, err
	}

	prefNames := SplitList(params.DietaryPreferences)

	var recipeIDs []uuid.UUID
	err = s.db.Transaction(func(tx *gorm.DB) error {
		prefs := make([]models.DietaryPreference, 0, len(prefNames))
		for _, name := range prefNames {
			pref, err := GetOrCreateDietaryPreference(tx, Capitalize(name))
			if err != nil {
				return err
			}
			prefs = append(prefs, *pref)
		}

		for i, gen := range generated {
			if err := s.validate.Struct(gen); err != nil {
				return validationError(i+1, err)
			}

			recipe := models.Recipe{
				UserID:             userID,
				Title:              gen.Title,
				Instructions:       gen.Instructions,
				CookingTimeMinutes: gen.CookingTimeMinutes,
				Cuisine:            gen.Cuisine,
				GeneratedByAI:      true,
			}
			if err := tx.Create(&recipe).Error; err != nil {
				return fmt.Errorf("failed to save generated recipe: %w", err)
			}

			for _, ing := range gen.Ingredients {
				ingredient, err := GetOrCreateIngredient(tx, strings.ToLower(ing.Name))
				if err != nil {
					return err
				}
				link := models.RecipeIngredient{
					RecipeID:     recipe.ID,
					IngredientID: ingredient.ID,
					Quantity:     ing.Quantity,
				}
				if err := tx.Create(&link).Error; err != nil {
					return fmt.Errorf("failed to link ingredient %q: %w", ing.Name, err)
				}
			}

			if len(prefs) > 0 {
				if err := tx.Model(&recipe).Association("DietaryPreferences").Append(prefs); err != nil {
					return fmt.Errorf("failed to set dietary preferences: %w", err)
				}
			}

			recipeIDs = append(recipeIDs, recipe.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var saved []models.Recipe
	if err := s.db.
		Preload("RecipeIngredients.Ingredient").
		Preload("DietaryPreferences").
		Where("id IN ?", recipeIDs).
		Order("created_at").
		Find(&saved).Error; err != nil {
		return nil, err
	}

	s.logger.Info("persisted generated recipes",
		zap.Int("count", len(saved)),
		zap.String("user_id", userID.String()))

	return saved, nil
}

func validationError(position int, err error) error {
	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	} else {
		fields = append(fields, err.Error())
	}
	return &ValidationError{Position: position, Fields: fields}
}
