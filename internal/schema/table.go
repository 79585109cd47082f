// Package schema compares the GORM models with the live database so a
// forgotten migration shows up before the server does.
package schema

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
	GORMSchema "gorm.io/gorm/schema"
)

// Table represents a gorm model
type Table struct {
	*GORMSchema.Schema
	Model   interface{}
	Columns []*Column
}

func (t *Table) TableName() string {
	return t.Table
}

// CreateTableFromModel parses model into its table and stored columns.
// Relation fields have no column and are skipped.
func CreateTableFromModel(model interface{}) (*Table, error) {
	modelSchema, err := GORMSchema.Parse(model, &sync.Map{}, GORMSchema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse model %T: %v", model, err)
	}

	columns := make([]*Column, 0, len(modelSchema.Fields))
	for _, field := range modelSchema.Fields {
		if field.DBName == "" {
			continue
		}
		columns = append(columns, &Column{Field: field})
	}

	return &Table{Schema: modelSchema, Model: model, Columns: columns}, nil
}

// TableDiff is what the database lacks for one model.
type TableDiff struct {
	Table        string
	Missing      bool
	ColumnsToAdd []string
}

func (d TableDiff) IsEmpty() bool {
	return !d.Missing && len(d.ColumnsToAdd) == 0
}

func (d TableDiff) String() string {
	if d.Missing {
		return fmt.Sprintf("table %s is missing", d.Table)
	}
	return fmt.Sprintf("table %s is missing columns %v", d.Table, d.ColumnsToAdd)
}

// Compare checks every model against db and returns the non-empty diffs in
// model order.
func Compare(db *gorm.DB, models ...interface{}) ([]TableDiff, error) {
	var diffs []TableDiff
	for _, model := range models {
		table, err := CreateTableFromModel(model)
		if err != nil {
			return nil, err
		}

		diff := TableDiff{Table: table.TableName()}
		if !db.Migrator().HasTable(table.TableName()) {
			diff.Missing = true
		} else {
			for _, column := range table.Columns {
				if !db.Migrator().HasColumn(model, column.ColumnName()) {
					diff.ColumnsToAdd = append(diff.ColumnsToAdd, column.ColumnName())
				}
			}
		}
		if !diff.IsEmpty() {
			diffs = append(diffs, diff)
		}
	}
	return diffs, nil
}
