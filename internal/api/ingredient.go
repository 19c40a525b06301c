package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"recipe-planner/internal/models"
)

// IngredientHandler exposes shared, unscoped reference data.
type IngredientHandler struct {
	db *gorm.DB
}

func NewIngredientHandler(db *gorm.DB) *IngredientHandler {
	return &IngredientHandler{db: db}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.List)
		ingredients.POST("", h.Create)
		ingredients.GET("/:id", h.Get)
		ingredients.PUT("/:id", h.Update)
		ingredients.DELETE("/:id", h.Delete)
	}
}

type ingredientRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (h *IngredientHandler) List(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := h.db.Order("name").Find(&ingredients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient := models.Ingredient{Name: req.Name}
	if err := h.db.Create(&ingredient).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient already exists"})
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) Get(c *gin.Context) {
	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) Update(c *gin.Context) {
	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient.Name = req.Name
	if err := h.db.Save(&ingredient).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update ingredient"})
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Ingredient{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ingredient"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
