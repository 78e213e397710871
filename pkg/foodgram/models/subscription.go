package models

import "time"

// Subscription records that a follower follows an author.
// Self-subscription is rejected at the database level, not just in handlers.
type Subscription struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_author;check:chk_no_self_follow,follower_id <> author_id" json:"follower_id"`
	AuthorID   uint      `gorm:"not null;uniqueIndex:idx_follower_author" json:"author_id"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
