package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/beesaferoot/yatube/migration"
)

type followV1 struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_follow_user_author"`
	User     userV1 `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	AuthorID uint   `gorm:"not null;uniqueIndex:idx_follow_user_author;index"`
	Author   userV1 `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (followV1) TableName() string { return "follows" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version:   "20240615180000",
		Name:      "create_follows",
		CreatedAt: time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC),
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&followV1{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable(&followV1{})
		},
	})
}
