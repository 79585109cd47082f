package models

import "time"

// User is an account that can author posts, comment and follow other users.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	DateJoined   time.Time `gorm:"autoCreateTime;<-:create;not null"`
}

func (u User) String() string {
	return u.Username
}
