package schema

import (
	GORMSchema "gorm.io/gorm/schema"
)

// Column represents a gorm field stored in the database
type Column struct {
	*GORMSchema.Field
}

func (c *Column) Type() string {
	return string(c.DataType)
}

func (c *Column) ColumnName() string {
	return c.DBName
}
