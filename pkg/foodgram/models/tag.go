package models

import "time"

// Tag is reference data applied to recipes
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"uniqueIndex;size:32;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:200;not null" json:"slug"`

	// Relationships
	Recipes []Recipe `gorm:"many2many:recipe_tags;" json:"-"`
}
