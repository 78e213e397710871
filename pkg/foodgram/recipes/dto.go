package recipes

import (
	"github.com/nmakarova/foodgram/pkg/foodgram/images"
	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"github.com/nmakarova/foodgram/pkg/foodgram/users"
)

// IngredientAmount is one (catalog id, amount) pair in a submission
type IngredientAmount struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required,min=1"`
}

// CreateRecipeRequest represents the request to create a recipe
type CreateRecipeRequest struct {
	Name        string             `json:"name" binding:"required,max=256"`
	Text        string             `json:"text" binding:"required"`
	Image       string             `json:"image" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Ingredients []IngredientAmount `json:"ingredients" binding:"required"`
	Tags        []uint             `json:"tags" binding:"required"`
}

// UpdateRecipeRequest represents the request to update a recipe.
// The association sets are replaced wholesale; image is kept when omitted.
type UpdateRecipeRequest struct {
	Name        string             `json:"name" binding:"required,max=256"`
	Text        string             `json:"text" binding:"required"`
	Image       string             `json:"image"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Ingredients []IngredientAmount `json:"ingredients" binding:"required"`
	Tags        []uint             `json:"tags" binding:"required"`
}

// RecipeIngredientResponse is a resolved ingredient line in the read shape
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          uint   `json:"amount"`
}

// RecipeResponse is the fully denormalized read representation. Write
// operations always answer with this shape, never with the write shape.
type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           users.UserResponse         `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      uint                       `json:"cooking_time"`
}

// ShortRecipeResponse is the compact shape used by favorite/cart replies
type ShortRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime uint   `json:"cooking_time"`
}

func shortRecipeResponse(r models.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       images.URL(r.Image),
		CookingTime: r.CookingTime,
	}
}

// recipeResponse builds the read shape for a recipe preloaded with
// Author, Tags and Ingredients.Ingredient.
func (h *Handler) recipeResponse(r models.Recipe, viewerID uint) RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID,
		Tags:        r.Tags,
		Author:      users.NewUserResponse(h.db, r.Author, viewerID),
		Ingredients: make([]RecipeIngredientResponse, 0, len(r.Ingredients)),
		Name:        r.Name,
		Image:       images.URL(r.Image),
		Text:        r.Text,
		CookingTime: r.CookingTime,
	}
	if resp.Tags == nil {
		resp.Tags = []models.Tag{}
	}

	for _, ri := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, RecipeIngredientResponse{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}

	if viewerID != 0 {
		var count int64
		h.db.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, r.ID).Count(&count)
		resp.IsFavorited = count > 0

		h.db.Model(&models.ShoppingCart{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, r.ID).Count(&count)
		resp.IsInShoppingCart = count > 0
	}

	return resp
}
