package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nmakarova/foodgram/pkg/foodgram/auth"
	"github.com/nmakarova/foodgram/pkg/foodgram/images"
	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"github.com/nmakarova/foodgram/pkg/foodgram/pagination"
	"gorm.io/gorm"
)

// RecipeMiniResponse is the short recipe shape nested under subscribed authors
type RecipeMiniResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime uint   `json:"cooking_time"`
}

// SubscriptionResponse is an author profile with their recipes attached
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeMiniResponse `json:"recipes"`
	RecipesCount int64                `json:"recipes_count"`
}

// subscriptionResponse loads the author's recipes, truncated to recipesLimit
// when it is positive. The limit applies to the nested list only, never to
// the author listing itself.
func (h *Handler) subscriptionResponse(author models.User, viewerID uint, recipesLimit int) (SubscriptionResponse, error) {
	resp := SubscriptionResponse{
		UserResponse: NewUserResponse(h.db, author, viewerID),
		Recipes:      []RecipeMiniResponse{},
	}

	if err := h.db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&resp.RecipesCount).Error; err != nil {
		return resp, err
	}

	query := h.db.Where("author_id = ?", author.ID).Order("created_at DESC, id DESC")
	if recipesLimit > 0 {
		query = query.Limit(recipesLimit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return resp, err
	}
	for _, r := range recipes {
		resp.Recipes = append(resp.Recipes, RecipeMiniResponse{
			ID:          r.ID,
			Name:        r.Name,
			Image:       images.URL(r.Image),
			CookingTime: r.CookingTime,
		})
	}

	return resp, nil
}

func recipesLimitParam(c *gin.Context) int {
	if v := c.Query("recipes_limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 0
}

// Subscribe follows an author
// @Summary Subscribe to an author
// @Tags users
// @Produce json
// @Param id path int true "Author ID"
// @Param recipes_limit query int false "Max nested recipes"
// @Success 201 {object} SubscriptionResponse
// @Failure 400 {object} map[string]string "Self-subscription or duplicate"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id}/subscribe/ [post]
func (h *Handler) Subscribe(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	var author models.User
	if err := h.db.First(&author, authorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	if author.ID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Cannot subscribe to yourself"})
		return
	}

	subscription := models.Subscription{FollowerID: userID, AuthorID: author.ID}
	if err := h.db.Create(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Already subscribed to this author"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to subscribe"})
		return
	}

	resp, err := h.subscriptionResponse(author, userID, recipesLimitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch author recipes"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Unsubscribe unfollows an author
// @Summary Unsubscribe from an author
// @Tags users
// @Param id path int true "Author ID"
// @Success 204 "No content"
// @Failure 400 {object} map[string]string "Not subscribed"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id}/subscribe/ [delete]
func (h *Handler) Unsubscribe(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	var author models.User
	if err := h.db.First(&author, authorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	res := h.db.Where("follower_id = ? AND author_id = ?", userID, author.ID).Delete(&models.Subscription{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to unsubscribe"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Not subscribed to this author"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Subscriptions lists the authors the caller follows
// @Summary List subscriptions
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param recipes_limit query int false "Max nested recipes per author"
// @Success 200 {object} pagination.Page
// @Security BearerAuth
// @Router /users/subscriptions/ [get]
func (h *Handler) Subscriptions(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	params := pagination.Parse(c, h.cfg.PageSize, h.cfg.MaxPageSize)
	recipesLimit := recipesLimitParam(c)

	base := h.db.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.follower_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch subscriptions"})
		return
	}

	var authors []models.User
	if err := base.Order("subscriptions.id DESC").
		Limit(params.Limit).Offset(params.Offset()).
		Find(&authors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch subscriptions"})
		return
	}

	results := make([]SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		resp, err := h.subscriptionResponse(author, userID, recipesLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch author recipes"})
			return
		}
		results = append(results, resp)
	}

	c.JSON(http.StatusOK, pagination.NewPage(c, params, total, results))
}
