package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	AuthorID uint `gorm:"not null;index" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID" json:"author"`
	PostID   uint `gorm:"not null;index" json:"post_id"`
	Post     Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
