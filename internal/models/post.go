package models

import "time"

// ShortTextLen bounds the String form of posts, comments and follows.
const ShortTextLen = 15

// Post represents a blog post
type Post struct {
	ID       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"autoCreateTime;<-:create;not null;index"`
	AuthorID uint      `gorm:"not null;index"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	GroupID  *uint     `gorm:"index"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL;"`
	Image    string    `gorm:"size:255;not null;default:''"`
	Comments []Comment `gorm:"foreignKey:PostID"`
}

func (p Post) String() string {
	return shorten(p.Text)
}

// HasGroup reports whether the post is attached to a group.
func (p Post) HasGroup() bool {
	return p.GroupID != nil && p.Group != nil
}

func shorten(s string) string {
	r := []rune(s)
	if len(r) <= ShortTextLen {
		return s
	}
	return string(r[:ShortTextLen])
}
