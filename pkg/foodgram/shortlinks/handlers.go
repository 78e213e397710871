package shortlinks

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"gorm.io/gorm"
)

// Handler handles short-link redirects
type Handler struct {
	db      *gorm.DB
	baseURL string
}

// NewHandler creates a new redirect handler
func NewHandler(db *gorm.DB, baseURL string) *Handler {
	return &Handler{db: db, baseURL: baseURL}
}

// Redirect resolves a short code to the canonical recipe page.
// @Summary Resolve a short link
// @Tags shortlinks
// @Param code path string true "Short code"
// @Success 302 "Redirect to the recipe page"
// @Failure 404 {object} map[string]string "Unknown code"
// @Router /s/{code}/ [get]
func (h *Handler) Redirect(c *gin.Context) {
	code := c.Param("code")

	var link models.ShortLink
	if err := h.db.Where("code = ?", code).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Link not found"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/recipes/%d", h.baseURL, link.RecipeID))
}

// RegisterRoutes registers redirect routes on the root router.
// This should be called AFTER all other routes to avoid conflicts.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/s/:code", h.Redirect)
}
