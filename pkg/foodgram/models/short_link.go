package models

import "time"

// ShortLink maps a random short code to a recipe, one code per recipe.
// Codes are created lazily on the first get-link request and reused forever.
type ShortLink struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RecipeID  uint      `gorm:"not null;uniqueIndex" json:"recipe_id"`
	Code      string    `gorm:"size:16;not null;uniqueIndex" json:"code"`

	// Relationships
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}
