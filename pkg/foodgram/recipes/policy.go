package recipes

import "github.com/nmakarova/foodgram/pkg/foodgram/models"

// CanModifyRecipe is the write policy for a recipe: only its author may
// update or delete it. Kept as an explicit function so the rule is visible
// at every call site instead of hidden in middleware.
func CanModifyRecipe(userID uint, recipe *models.Recipe) bool {
	return recipe.AuthorID == userID
}
