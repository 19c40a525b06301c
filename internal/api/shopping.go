package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipe-planner/internal/middleware"
	"recipe-planner/internal/models"
)

// ShoppingListItemHandler exposes shopping-list CRUD scoped through the
// owning meal plan.
type ShoppingListItemHandler struct {
	db *gorm.DB
}

func NewShoppingListItemHandler(db *gorm.DB) *ShoppingListItemHandler {
	return &ShoppingListItemHandler{db: db}
}

func (h *ShoppingListItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/shopping-list-items")
	{
		items.GET("", h.List)
		items.POST("", h.Create)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
	}
}

type shoppingListItemRequest struct {
	MealPlanID   uuid.UUID `json:"meal_plan_id" binding:"required"`
	IngredientID uuid.UUID `json:"ingredient_id" binding:"required"`
	Quantity     string    `json:"quantity" binding:"required,max=100"`
	IsChecked    bool      `json:"is_checked"`
}

func (h *ShoppingListItemHandler) ownedItem(c *gin.Context, userID uuid.UUID) (*models.ShoppingListItem, bool) {
	var item models.ShoppingListItem
	if err := h.db.Preload("Ingredient").First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping list item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shopping list item"})
		}
		return nil, false
	}

	var plan models.MealPlan
	if err := h.db.First(&plan, "id = ?", item.MealPlanID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal plan"})
		return nil, false
	}
	if plan.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this shopping list item"})
		return nil, false
	}
	return &item, true
}

func (h *ShoppingListItemHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var items []models.ShoppingListItem
	err := h.db.
		Preload("Ingredient").
		Joins("JOIN meal_plans ON meal_plans.id = shopping_list_items.meal_plan_id").
		Where("meal_plans.user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shopping list items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ShoppingListItemHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req shoppingListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var plan models.MealPlan
	if err := h.db.First(&plan, "id = ?", req.MealPlanID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal plan does not exist"})
		return
	}
	if plan.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only add items to your own meal plans"})
		return
	}

	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, "id = ?", req.IngredientID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient does not exist"})
		return
	}

	item := models.ShoppingListItem{
		MealPlanID:   req.MealPlanID,
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		IsChecked:    req.IsChecked,
	}
	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create shopping list item"})
		return
	}

	item.Ingredient = ingredient
	c.JSON(http.StatusCreated, item)
}

func (h *ShoppingListItemHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	item, ok := h.ownedItem(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingListItemHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	item, ok := h.ownedItem(c, userID)
	if !ok {
		return
	}

	var req struct {
		Quantity  *string `json:"quantity" binding:"omitempty,max=100"`
		IsChecked *bool   `json:"is_checked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.IsChecked != nil {
		item.IsChecked = *req.IsChecked
	}

	if err := h.db.Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update shopping list item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingListItemHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	item, ok := h.ownedItem(c, userID)
	if !ok {
		return
	}

	if err := h.db.Delete(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete shopping list item"})
		return
	}
	c.Status(http.StatusNoContent)
}
