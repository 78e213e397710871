package recipes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmakarova/foodgram/pkg/foodgram/auth"
	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"github.com/nmakarova/foodgram/pkg/foodgram/shopping"
	"github.com/nmakarova/foodgram/pkg/foodgram/shortlinks"
	"gorm.io/gorm"
)

// addMembership inserts a (user, recipe) membership row, translating the
// unique-constraint violation into the domain duplicate error. The insert
// itself is the concurrency guard: two racing adds leave exactly one row.
func (h *Handler) addMembership(c *gin.Context, record interface{}, existsMsg string, recipe models.Recipe) {
	if err := h.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": existsMsg})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save"})
		return
	}

	c.JSON(http.StatusCreated, shortRecipeResponse(recipe))
}

// removeMembership deletes a (user, recipe) membership row; a missing row is
// a domain error, never a silent no-op.
func (h *Handler) removeMembership(c *gin.Context, model interface{}, notFoundMsg string, userID, recipeID uint) {
	res := h.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(model)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": notFoundMsg})
		return
	}

	c.Status(http.StatusNoContent)
}

// Favorite adds a recipe to the caller's favorites
// @Summary Favorite a recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} ShortRecipeResponse
// @Failure 400 {object} map[string]string "Already favorited"
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id}/favorite/ [post]
func (h *Handler) Favorite(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	recipe, ok := h.recipeFromPath(c)
	if !ok {
		return
	}
	h.addMembership(c, &models.Favorite{UserID: userID, RecipeID: recipe.ID}, "Recipe is already in favorites", recipe)
}

// Unfavorite removes a recipe from the caller's favorites
// @Summary Unfavorite a recipe
// @Tags recipes
// @Param id path int true "Recipe ID"
// @Success 204 "No content"
// @Failure 400 {object} map[string]string "Not in favorites"
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id}/favorite/ [delete]
func (h *Handler) Unfavorite(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	recipe, ok := h.recipeFromPath(c)
	if !ok {
		return
	}
	h.removeMembership(c, &models.Favorite{}, "Recipe is not in favorites", userID, recipe.ID)
}

// AddToCart adds a recipe to the caller's shopping cart
// @Summary Add a recipe to the shopping cart
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} ShortRecipeResponse
// @Failure 400 {object} map[string]string "Already in cart"
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id}/shopping_cart/ [post]
func (h *Handler) AddToCart(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	recipe, ok := h.recipeFromPath(c)
	if !ok {
		return
	}
	h.addMembership(c, &models.ShoppingCart{UserID: userID, RecipeID: recipe.ID}, "Recipe is already in the shopping cart", recipe)
}

// RemoveFromCart removes a recipe from the caller's shopping cart
// @Summary Remove a recipe from the shopping cart
// @Tags recipes
// @Param id path int true "Recipe ID"
// @Success 204 "No content"
// @Failure 400 {object} map[string]string "Not in cart"
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id}/shopping_cart/ [delete]
func (h *Handler) RemoveFromCart(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	recipe, ok := h.recipeFromPath(c)
	if !ok {
		return
	}
	h.removeMembership(c, &models.ShoppingCart{}, "Recipe is not in the shopping cart", userID, recipe.ID)
}

// DownloadShoppingCart renders the caller's aggregated shopping list
// @Summary Download the shopping list
// @Description Sums ingredient amounts across every recipe in the cart; format=txt (default) or pdf
// @Tags recipes
// @Produce plain
// @Param format query string false "txt or pdf"
// @Success 200 {string} string "Attachment"
// @Failure 400 {object} map[string]string "Shopping cart is empty"
// @Security BearerAuth
// @Router /recipes/download_shopping_cart/ [get]
func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	items, err := shopping.Aggregate(h.db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to build shopping list"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Shopping cart is empty"})
		return
	}

	if c.Query("format") == "pdf" {
		data, err := shopping.RenderPDF(items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to render PDF"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="shopping_cart.pdf"`)
		c.Data(http.StatusOK, "application/pdf", data)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_cart.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", shopping.RenderText(items))
}

// GetLink returns the recipe's short link, creating the code on first use
// @Summary Get a short link for a recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Recipe not found"
// @Router /recipes/{id}/get-link/ [get]
func (h *Handler) GetLink(c *gin.Context) {
	recipe, ok := h.recipeFromPath(c)
	if !ok {
		return
	}

	code, err := shortlinks.EnsureCode(h.db, recipe.ID, h.cfg.ShortCodeAlphabet, h.cfg.ShortCodeLength)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create short link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"short-link": fmt.Sprintf("%s/s/%s", h.cfg.BaseURL, code)})
}
