// Package commands exposes the schema migrator as cobra sub-commands.
package commands

import "github.com/spf13/cobra"

// MigrateCmd groups the migration sub-commands under "migrate".
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.AddCommand(
		InitCmd(),
		UpCmd(),
		DownCmd(),
		StatusCmd(),
		HistoryCmd(),
		CreateCmd(),
		ValidateCmd(),
		CheckCmd(),
	)
	return cmd
}
