package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func UpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			debug, _ := cmd.Flags().GetBool("debug")
			out := cmd.OutOrStdout()

			m, err := getMigrator(debug)
			if err != nil {
				return err
			}

			pending, err := m.Pending()
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintln(out, "No pending migrations.")
				return nil
			}

			if dryRun {
				fmt.Fprintln(out, "Pending migrations:")
				for _, mig := range pending {
					fmt.Fprintf(out, "- %s (%s)\n", mig.Name, mig.Version)
				}
				return nil
			}

			applied, err := m.Up()
			for _, mig := range applied {
				fmt.Fprintf(out, "Successfully applied migration: %s (%s)\n", mig.Name, mig.Version)
			}
			return err
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show pending migrations without executing them")
	cmd.Flags().Bool("debug", false, "Enable debug output")

	return cmd
}
