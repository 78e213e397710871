package models

import "time"

// Recipe is the aggregate root: the recipe row plus its tag set and its
// ingredient rows (with per-recipe amounts). Writes to the three must happen
// inside one transaction.
type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Text        string    `gorm:"not null" json:"text"`
	Image       string    `json:"image"` // path under the media dir
	CookingTime uint      `gorm:"not null" json:"cooking_time"`

	// Relationships
	Author      User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
}

// RecipeIngredient joins a recipe to a catalog ingredient with an amount.
// A recipe lists each ingredient at most once.
type RecipeIngredient struct {
	ID           uint `gorm:"primarykey" json:"-"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"id"`
	Amount       uint `gorm:"not null;check:chk_amount_positive,amount > 0" json:"amount"`

	// Relationships
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}
