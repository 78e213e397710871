package ingredients

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"gorm.io/gorm"
)

// Handler handles ingredient catalog requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new ingredients handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// List returns catalog ingredients, optionally filtered by a name prefix
// @Summary List ingredients
// @Tags ingredients
// @Produce json
// @Param name query string false "Name prefix"
// @Success 200 {array} models.Ingredient
// @Router /ingredients/ [get]
func (h *Handler) List(c *gin.Context) {
	query := h.db.Order("name")
	if prefix := c.Query("name"); prefix != "" {
		query = query.Where("name LIKE ?", prefix+"%")
	}

	var items []models.Ingredient
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch ingredients"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// Get returns a single catalog ingredient
// @Summary Get an ingredient
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} map[string]string "Ingredient not found"
// @Router /ingredients/{id}/ [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Ingredient not found"})
		return
	}

	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Ingredient not found"})
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

// RegisterRoutes registers ingredient routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}
