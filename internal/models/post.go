package models

import "time"

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	IsPublished bool      `gorm:"not null;index:idx_posts_visibility" json:"is_published"`
	PubDate     time.Time `gorm:"not null;index:idx_posts_visibility" json:"pub_date"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	LocationID *uint     `json:"location_id"`
	Location   *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`

	// CommentCount is a query annotation, never a stored column.
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`
}
