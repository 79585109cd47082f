package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/beesaferoot/yatube/migration"
)

type commentV1 struct {
	ID       uint      `gorm:"primaryKey"`
	PostID   uint      `gorm:"not null;index"`
	Post     postV1    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	AuthorID uint      `gorm:"not null;index"`
	Author   userV1    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"not null;index"`
}

func (commentV1) TableName() string { return "comments" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version:   "20240608093000",
		Name:      "create_comments",
		CreatedAt: time.Date(2024, 6, 8, 9, 30, 0, 0, time.UTC),
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&commentV1{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable(&commentV1{})
		},
	})
}
