package models

// ModelTypeRegistry lists every persisted model by name.
var ModelTypeRegistry = map[string]interface{}{
	"Comment": Comment{},
	"Follow":  Follow{},
	"Group":   Group{},
	"Post":    Post{},
	"User":    User{},
}

// All returns pointers to every model in dependency order, ready for
// AutoMigrate or DropTable.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	}
}
