package models

// Follow links a follower (User) to an author they subscribe to.
// A pair may exist at most once.
type Follow struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_follow_user_author"`
	User     User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follow_user_author;index"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (f Follow) String() string {
	return shorten(f.Author.Username)
}
