package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/yatube/internal/models"
	"github.com/beesaferoot/yatube/internal/schema"
)

func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Compare the models with the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			db, err := getDB(false)
			if err != nil {
				return err
			}

			diffs, err := schema.Compare(db, models.All()...)
			if err != nil {
				return err
			}
			if len(diffs) == 0 {
				fmt.Fprintln(out, "Schema is up to date")
				return nil
			}

			for _, d := range diffs {
				fmt.Fprintln(out, d.String())
			}
			return fmt.Errorf("schema drift detected in %d table(s); run migrate up", len(diffs))
		},
	}
}
