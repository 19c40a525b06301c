package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-planner/internal/models"
	"recipe-planner/internal/service"
)

// Expected CSV columns. Only recipe_name is close to mandatory; every other
// field degrades to a safe default when absent.
const (
	colTitle       = "recipe_name"
	colDirections  = "directions"
	colTotalTime   = "total_time"
	colCookTime    = "cook_time"
	colPrepTime    = "prep_time"
	colCuisinePath = "cuisine_path"
	colNutrition   = "nutrition"
	colIngredients = "ingredients"
)

const defaultInstructions = "No instructions provided."

// Importer loads recipe CSV files into the database on behalf of an existing
// user. Each invocation is a single transaction: either every record's rows
// are committed or none are.
type Importer struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// ImportCSV reads the file at path and creates one recipe per record, owned
// by the named user. It fails before touching any data when the user does
// not exist or the file cannot be opened, and rolls back the whole import on
// any later failure. Returns the number of recipes created.
func (imp *Importer) ImportCSV(path, username string) (int, error) {
	var user models.User
	if err := imp.db.Where("username = ?", username).First(&user).Error; err != nil {
		return 0, fmt.Errorf("user %q does not exist: %w", username, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer file.Close()

	imp.logger.Info("starting recipe import",
		zap.String("file", path),
		zap.String("user", username))

	count := 0
	err = imp.db.Transaction(func(tx *gorm.DB) error {
		reader := csv.NewReader(file)

		header, err := reader.Read()
		if err != nil {
			return fmt.Errorf("failed to read CSV header: %w", err)
		}
		columns := make(map[string]int, len(header))
		for i, name := range header {
			columns[strings.TrimSpace(name)] = i
		}

		for rowNum := 1; ; rowNum++ {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read row %d: %w", rowNum, err)
			}

			if err := imp.importRecord(tx, &user, columns, record, rowNum); err != nil {
				return fmt.Errorf("row %d: %w", rowNum, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	imp.logger.Info("recipe import complete", zap.Int("recipes", count))
	return count, nil
}

func (imp *Importer) importRecord(tx *gorm.DB, user *models.User, columns map[string]int, record []string, rowNum int) error {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	title := field(colTitle)
	if title == "" {
		title = fmt.Sprintf("Untitled Recipe %d", rowNum)
	}
	instructions := field(colDirections)
	if instructions == "" {
		instructions = defaultInstructions
	}

	recipe := models.Recipe{
		UserID:             user.ID,
		Title:              title,
		Instructions:       instructions,
		CookingTimeMinutes: ParseCookingTime(field(colTotalTime), field(colCookTime), field(colPrepTime)),
		Cuisine:            CuisineFromPath(field(colCuisinePath)),
		GeneratedByAI:      false,
	}
	if err := tx.Create(&recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe %q: %w", title, err)
	}

	// First occurrence of a normalized ingredient name wins within a record.
	seen := make(map[string]bool)
	for _, item := range service.SplitList(field(colIngredients)) {
		quantity, name := ParseIngredientLine(item)
		if name == "" {
			continue
		}
		normalized := strings.ToLower(name)
		if seen[normalized] {
			continue
		}
		seen[normalized] = true

		ingredient, err := service.GetOrCreateIngredient(tx, normalized)
		if err != nil {
			return fmt.Errorf("failed to resolve ingredient %q: %w", normalized, err)
		}
		link := models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ingredient.ID,
			Quantity:     quantity,
		}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link ingredient %q: %w", normalized, err)
		}
	}

	for _, name := range service.SplitList(field(colNutrition)) {
		pref, err := service.GetOrCreateDietaryPreference(tx, service.Capitalize(name))
		if err != nil {
			return fmt.Errorf("failed to resolve dietary preference %q: %w", name, err)
		}
		if err := tx.Model(&recipe).Association("DietaryPreferences").Append(pref); err != nil {
			return fmt.Errorf("failed to associate dietary preference %q: %w", name, err)
		}
	}

	return nil
}
