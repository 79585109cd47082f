package models

// Group is a themed community that posts can optionally belong to.
type Group struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"size:100;uniqueIndex;not null"`
	Description string `gorm:"size:300;not null"`
}

func (g Group) String() string {
	return g.Title
}
