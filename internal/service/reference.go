package service

import (
	"errors"
	"strings"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe-planner/internal/models"
)

// GetOrCreateIngredient returns the shared ingredient row for name, creating
// it when absent. The insert uses ON CONFLICT DO NOTHING so concurrent
// callers racing on the same name fall back to the existing row instead of
// erroring. Callers are expected to pass an already-lowercased name.
func GetOrCreateIngredient(db *gorm.DB, name string) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := db.Where("name = ?", name).First(&ing).Error
	if err == nil {
		return &ing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ing = models.Ingredient{Name: name}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&ing).Error; err != nil {
		return nil, err
	}

	// Re-read: on conflict the insert is a no-op and the generated ID does
	// not refer to a stored row.
	if err := db.Where("name = ?", name).First(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

// GetOrCreateDietaryPreference returns the shared preference row for name,
// creating it when absent. Callers pass an already-capitalized name.
func GetOrCreateDietaryPreference(db *gorm.DB, name string) (*models.DietaryPreference, error) {
	var pref models.DietaryPreference
	err := db.Where("name = ?", name).First(&pref).Error
	if err == nil {
		return &pref, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pref = models.DietaryPreference{Name: name}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&pref).Error; err != nil {
		return nil, err
	}

	if err := db.Where("name = ?", name).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

// Capitalize normalizes a dietary-preference name: first rune upper, the
// rest lower ("vegan" -> "Vegan", "GLUTEN-FREE" -> "Gluten-free").
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// SplitList splits a comma-separated free-text list, trimming whitespace and
// dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
