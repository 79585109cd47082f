package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/beesaferoot/yatube/migration"
)

type userV1 struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	DateJoined   time.Time `gorm:"not null"`
}

func (userV1) TableName() string { return "users" }

type groupV1 struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"size:100;uniqueIndex;not null"`
	Description string `gorm:"size:300;not null"`
}

func (groupV1) TableName() string { return "groups" }

type postV1 struct {
	ID       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"not null;index"`
	AuthorID uint      `gorm:"not null;index"`
	Author   userV1    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	GroupID  *uint     `gorm:"index"`
	Group    *groupV1  `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL;"`
	Image    string    `gorm:"size:255;not null;default:''"`
}

func (postV1) TableName() string { return "posts" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version:   "20240601120000",
		Name:      "create_users_groups_posts",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&userV1{}, &groupV1{}, &postV1{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable(&postV1{}, &groupV1{}, &userV1{})
		},
	})
}
