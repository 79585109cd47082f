package models

import "time"

// Comment is a reader's reply under a post.
type Comment struct {
	ID       uint      `gorm:"primaryKey"`
	PostID   uint      `gorm:"not null;index"`
	Post     Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	AuthorID uint      `gorm:"not null;index"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"autoCreateTime;<-:create;not null;index"`
}

func (c Comment) String() string {
	return shorten(c.Text)
}
