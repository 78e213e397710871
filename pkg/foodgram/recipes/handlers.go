package recipes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nmakarova/foodgram/pkg/foodgram/auth"
	"github.com/nmakarova/foodgram/pkg/foodgram/config"
	"github.com/nmakarova/foodgram/pkg/foodgram/images"
	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"github.com/nmakarova/foodgram/pkg/foodgram/pagination"
	"gorm.io/gorm"
)

// Handler handles recipe-related requests
type Handler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewHandler creates a new recipes handler
func NewHandler(db *gorm.DB, cfg *config.Config) *Handler {
	return &Handler{db: db, cfg: cfg}
}

// fieldError is a per-field validation failure surfaced as a 400 body
type fieldError struct {
	Field   string
	Message string
}

func (e *fieldError) Error() string {
	return e.Message
}

// validateAssociations checks the submitted tag and ingredient sets:
// both non-empty, no repeated ids, every id present in the catalog.
func (h *Handler) validateAssociations(ingredients []IngredientAmount, tagIDs []uint) *fieldError {
	if len(ingredients) == 0 {
		return &fieldError{"ingredients", "At least one ingredient is required"}
	}
	if len(tagIDs) == 0 {
		return &fieldError{"tags", "At least one tag is required"}
	}

	seen := make(map[uint]bool, len(ingredients))
	ingredientIDs := make([]uint, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.Amount < 1 {
			return &fieldError{"ingredients", fmt.Sprintf("Amount for ingredient %d must be a positive integer", ing.ID)}
		}
		if seen[ing.ID] {
			return &fieldError{"ingredients", fmt.Sprintf("Duplicate ingredient %d", ing.ID)}
		}
		seen[ing.ID] = true
		ingredientIDs = append(ingredientIDs, ing.ID)
	}

	seenTags := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seenTags[id] {
			return &fieldError{"tags", fmt.Sprintf("Duplicate tag %d", id)}
		}
		seenTags[id] = true
	}

	if missing := h.missingIDs(&models.Ingredient{}, ingredientIDs); missing != 0 {
		return &fieldError{"ingredients", fmt.Sprintf("Ingredient %d does not exist", missing)}
	}
	if missing := h.missingIDs(&models.Tag{}, tagIDs); missing != 0 {
		return &fieldError{"tags", fmt.Sprintf("Tag %d does not exist", missing)}
	}

	return nil
}

// missingIDs returns the first id from ids that has no catalog row, or 0
func (h *Handler) missingIDs(model interface{}, ids []uint) uint {
	var found []uint
	h.db.Model(model).Where("id IN ?", ids).Pluck("id", &found)

	existing := make(map[uint]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}
	for _, id := range ids {
		if !existing[id] {
			return id
		}
	}
	return 0
}

func (h *Handler) validateCookingTime(minutes int) *fieldError {
	if minutes < h.cfg.MinCookingTime {
		return &fieldError{"cooking_time", fmt.Sprintf("Cooking time must be at least %d", h.cfg.MinCookingTime)}
	}
	if minutes > h.cfg.MaxCookingTime {
		return &fieldError{"cooking_time", fmt.Sprintf("Cooking time must not exceed %d", h.cfg.MaxCookingTime)}
	}
	return nil
}

// writeAssociations replaces the recipe's ingredient rows and tag set inside
// the caller's transaction. Delete-then-reinsert keeps the end state exactly
// the submitted sets.
func writeAssociations(tx *gorm.DB, recipe *models.Recipe, ingredients []IngredientAmount, tagIDs []uint) error {
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}

	rows := make([]models.RecipeIngredient, len(ingredients))
	for i, ing := range ingredients {
		rows[i] = models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ing.ID,
			Amount:       uint(ing.Amount),
		}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return err
	}

	var tags []models.Tag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return err
	}
	return tx.Model(recipe).Association("Tags").Replace(tags)
}

// loadRecipe fetches a recipe with everything the read shape needs
func (h *Handler) loadRecipe(id uint) (models.Recipe, error) {
	var recipe models.Recipe
	err := h.db.Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	return recipe, err
}

// recipeFromPath resolves the :id path param, replying 404 on any miss
func (h *Handler) recipeFromPath(c *gin.Context) (models.Recipe, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Recipe not found"})
		return models.Recipe{}, false
	}

	var recipe models.Recipe
	if err := h.db.First(&recipe, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Recipe not found"})
		return models.Recipe{}, false
	}
	return recipe, true
}

// List returns recipes, newest first, with optional filters
// @Summary List recipes
// @Description List recipes with author/tag filters; is_favorited and is_in_shopping_cart apply only for authenticated callers
// @Tags recipes
// @Produce json
// @Param author query int false "Filter by author ID"
// @Param tags query []string false "Filter by tag slug (repeatable)"
// @Param is_favorited query bool false "Only recipes the caller favorited"
// @Param is_in_shopping_cart query bool false "Only recipes in the caller's cart"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Page
// @Router /recipes/ [get]
func (h *Handler) List(c *gin.Context) {
	viewerID, _ := auth.GetUserID(c)
	params := pagination.Parse(c, h.cfg.PageSize, h.cfg.MaxPageSize)

	query := h.db.Model(&models.Recipe{})

	if author := c.Query("author"); author != "" {
		query = query.Where("author_id = ?", author)
	}
	if slugs := c.QueryArray("tags"); len(slugs) > 0 {
		query = query.Where(
			"recipes.id IN (SELECT recipe_id FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE tags.slug IN ?)",
			slugs,
		)
	}
	if viewerID != 0 {
		if truthy(c.Query("is_favorited")) {
			query = query.Where("recipes.id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)", viewerID)
		}
		if truthy(c.Query("is_in_shopping_cart")) {
			query = query.Where("recipes.id IN (SELECT recipe_id FROM shopping_carts WHERE user_id = ?)", viewerID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch recipes"})
		return
	}

	var found []models.Recipe
	err := query.Order("created_at DESC, id DESC").
		Limit(params.Limit).Offset(params.Offset()).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Find(&found).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch recipes"})
		return
	}

	results := make([]RecipeResponse, len(found))
	for i, r := range found {
		results[i] = h.recipeResponse(r, viewerID)
	}

	c.JSON(http.StatusOK, pagination.NewPage(c, params, total, results))
}

func truthy(v string) bool {
	return v == "1" || v == "true" || v == "True"
}

// Get returns a single recipe
// @Summary Get a recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeResponse
// @Failure 404 {object} map[string]string "Recipe not found"
// @Router /recipes/{id}/ [get]
func (h *Handler) Get(c *gin.Context) {
	viewerID, _ := auth.GetUserID(c)

	recipe, ok := h.recipeFromPath(c)
	if !ok {
		return
	}

	loaded, err := h.loadRecipe(recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, h.recipeResponse(loaded, viewerID))
}

// Create creates a new recipe aggregate in one transaction
// @Summary Create a recipe
// @Description Create a recipe with its ingredient amounts and tags; all rows are written atomically
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body CreateRecipeRequest true "Recipe details"
// @Success 201 {object} RecipeResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Authentication required"
// @Security BearerAuth
// @Router /recipes/ [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if ferr := h.validateCookingTime(req.CookingTime); ferr != nil {
		c.JSON(http.StatusBadRequest, gin.H{ferr.Field: ferr.Message})
		return
	}
	if ferr := h.validateAssociations(req.Ingredients, req.Tags); ferr != nil {
		c.JSON(http.StatusBadRequest, gin.H{ferr.Field: ferr.Message})
		return
	}

	imagePath, err := images.SaveBase64(h.cfg.MediaDir, "recipes", req.Image)
	if err != nil {
		if errors.Is(err, images.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"image": "Invalid base64 image"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to store image"})
		return
	}

	recipe := models.Recipe{
		AuthorID:    userID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imagePath,
		CookingTime: uint(req.CookingTime),
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return writeAssociations(tx, &recipe, req.Ingredients, req.Tags)
	})
	if err != nil {
		images.Remove(h.cfg.MediaDir, imagePath)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create recipe"})
		return
	}

	loaded, err := h.loadRecipe(recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusCreated, h.recipeResponse(loaded, userID))
}

// Update replaces a recipe's fields and both association sets
// @Summary Update a recipe
// @Description Author-only; the submitted ingredient and tag sets fully replace the stored ones
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Updated recipe"
// @Success 200 {object} RecipeResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id}/ [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	recipe, ok := h.recipeFromPath(c)
	if !ok {
		return
	}
	if !CanModifyRecipe(userID, &recipe) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Only the author may edit this recipe"})
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if ferr := h.validateCookingTime(req.CookingTime); ferr != nil {
		c.JSON(http.StatusBadRequest, gin.H{ferr.Field: ferr.Message})
		return
	}
	if ferr := h.validateAssociations(req.Ingredients, req.Tags); ferr != nil {
		c.JSON(http.StatusBadRequest, gin.H{ferr.Field: ferr.Message})
		return
	}

	oldImage := ""
	if req.Image != "" {
		imagePath, err := images.SaveBase64(h.cfg.MediaDir, "recipes", req.Image)
		if err != nil {
			if errors.Is(err, images.ErrInvalidImage) {
				c.JSON(http.StatusBadRequest, gin.H{"image": "Invalid base64 image"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to store image"})
			return
		}
		oldImage = recipe.Image
		recipe.Image = imagePath
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = uint(req.CookingTime)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		return writeAssociations(tx, &recipe, req.Ingredients, req.Tags)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update recipe"})
		return
	}
	images.Remove(h.cfg.MediaDir, oldImage)

	loaded, err := h.loadRecipe(recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, h.recipeResponse(loaded, userID))
}

// Delete removes a recipe and everything referencing it
// @Summary Delete a recipe
// @Tags recipes
// @Param id path int true "Recipe ID"
// @Success 204 "No content"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id}/ [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	recipe, ok := h.recipeFromPath(c)
	if !ok {
		return
	}
	if !CanModifyRecipe(userID, &recipe) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Only the author may delete this recipe"})
		return
	}

	// Join rows, favorites, cart entries and the short link go with it
	// through the foreign-key cascades.
	if err := h.db.Delete(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete recipe"})
		return
	}
	images.Remove(h.cfg.MediaDir, recipe.Image)

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers recipe routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", auth.OptionalAuthMiddleware(), h.List)
	rg.POST("", auth.AuthMiddleware(), h.Create)

	rg.GET("/download_shopping_cart", auth.AuthMiddleware(), h.DownloadShoppingCart)

	rg.GET("/:id", auth.OptionalAuthMiddleware(), h.Get)
	rg.PATCH("/:id", auth.AuthMiddleware(), h.Update)
	rg.DELETE("/:id", auth.AuthMiddleware(), h.Delete)

	rg.POST("/:id/favorite", auth.AuthMiddleware(), h.Favorite)
	rg.DELETE("/:id/favorite", auth.AuthMiddleware(), h.Unfavorite)
	rg.POST("/:id/shopping_cart", auth.AuthMiddleware(), h.AddToCart)
	rg.DELETE("/:id/shopping_cart", auth.AuthMiddleware(), h.RemoveFromCart)

	rg.GET("/:id/get-link", h.GetLink)
}
