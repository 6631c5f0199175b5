package models

import "time"

// Blog is a post owned by a single author. Deleting a blog only flips
// IsDeleted; rows are never removed.
type Blog struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"size:512" json:"description"`
	Content     string `gorm:"type:text" json:"content"`
	AuthorID    uint   `gorm:"index;not null" json:"authorId"`
	IsDeleted   bool   `gorm:"index;not null;default:false" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}
