package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/yatube/migration"
)

var migrationName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var migrationTemplate = template.Must(template.New("migration").Parse(`package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/beesaferoot/yatube/migration"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version:   "{{.Version}}",
		Name:      "{{.Name}}",
		CreatedAt: time.Date({{.Created.Year}}, {{printf "%d" .Created.Month}}, {{.Created.Day}}, {{.Created.Hour}}, {{.Created.Minute}}, {{.Created.Second}}, 0, time.UTC),
		Up: func(db *gorm.DB) error {
			return nil
		},
		Down: func(db *gorm.DB) error {
			return nil
		},
	})
}
`))

func CreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !migrationName.MatchString(name) {
				return fmt.Errorf("invalid migration name %q: use lower case letters, digits and underscores", name)
			}

			created := time.Now().UTC()
			version := created.Format(migration.VersionLayout)

			migrationsDir, err := getMigrationsDir()
			if err != nil {
				return fmt.Errorf("failed to validate migrations directory: %v", err)
			}

			filePath := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.go", version, name))
			f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
			if err != nil {
				return fmt.Errorf("failed to create migration file: %v", err)
			}
			defer f.Close()

			err = migrationTemplate.Execute(f, struct {
				Version string
				Name    string
				Created time.Time
			}{version, name, created})
			if err != nil {
				return fmt.Errorf("failed to write migration file: %v", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created migration: %s\n", filePath)
			return nil
		},
	}
}
