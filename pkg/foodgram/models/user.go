package models

import "time"

// User represents a registered user. Hard deletes are used so that
// foreign-key cascades clean up recipes and membership rows.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName    string    `gorm:"size:150;not null" json:"first_name"`
	LastName     string    `gorm:"size:150;not null" json:"last_name"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar,omitempty"` // path under the media dir, empty if unset
	IsAdmin      bool      `gorm:"default:false" json:"-"`

	// Relationships
	Recipes []Recipe `gorm:"foreignKey:AuthorID" json:"-"`
}
