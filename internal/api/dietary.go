package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"recipe-planner/internal/models"
	"recipe-planner/internal/service"
)

// DietaryPreferenceHandler exposes shared, unscoped reference data. Names
// are capitalization-normalized on write ("vegan" -> "Vegan").
type DietaryPreferenceHandler struct {
	db *gorm.DB
}

func NewDietaryPreferenceHandler(db *gorm.DB) *DietaryPreferenceHandler {
	return &DietaryPreferenceHandler{db: db}
}

func (h *DietaryPreferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/dietary-preferences")
	{
		prefs.GET("", h.List)
		prefs.POST("", h.Create)
		prefs.GET("/:id", h.Get)
		prefs.PUT("/:id", h.Update)
		prefs.DELETE("/:id", h.Delete)
	}
}

type dietaryPreferenceRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (h *DietaryPreferenceHandler) List(c *gin.Context) {
	var prefs []models.DietaryPreference
	if err := h.db.Order("name").Find(&prefs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch dietary preferences"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *DietaryPreferenceHandler) Create(c *gin.Context) {
	var req dietaryPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref := models.DietaryPreference{Name: service.Capitalize(req.Name)}
	if err := h.db.Create(&pref).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dietary preference already exists"})
		return
	}
	c.JSON(http.StatusCreated, pref)
}

func (h *DietaryPreferenceHandler) Get(c *gin.Context) {
	var pref models.DietaryPreference
	if err := h.db.First(&pref, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dietary preference not found"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *DietaryPreferenceHandler) Update(c *gin.Context) {
	var pref models.DietaryPreference
	if err := h.db.First(&pref, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dietary preference not found"})
		return
	}

	var req dietaryPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref.Name = service.Capitalize(req.Name)
	if err := h.db.Save(&pref).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update dietary preference"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *DietaryPreferenceHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.DietaryPreference{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete dietary preference"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "dietary preference not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
