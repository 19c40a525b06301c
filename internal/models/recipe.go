package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is shared reference data: one row per unique name, created
// lazily on first reference and never deleted by import or generation flows.
// Business logic lowercases names before lookup/creation.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// DietaryPreference is shared reference data, e.g. "Vegetarian" or
// "Gluten-free". Names are capitalized on creation.
type DietaryPreference struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (d *DietaryPreference) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type Recipe struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	UserID             uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User               User                `json:"-"`
	Title              string              `gorm:"size:255;not null" json:"title"`
	Instructions       string              `gorm:"type:text;not null" json:"instructions"`
	CookingTimeMinutes *int                `json:"cooking_time_minutes"`
	Cuisine            string              `gorm:"size:100" json:"cuisine"`
	GeneratedByAI      bool                `gorm:"not null;default:false" json:"generated_by_ai"`
	RecipeIngredients  []RecipeIngredient  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DietaryPreferences []DietaryPreference `gorm:"many2many:recipe_dietary_preferences" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is the join row carrying a free-text quantity. An
// ingredient can only be listed once per recipe.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `json:"ingredient"`
	Quantity     string     `gorm:"size:100;not null" json:"quantity"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
