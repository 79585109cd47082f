package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/beesaferoot/yatube/migration/commands"
	_ "github.com/beesaferoot/yatube/migrations"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yatube",
		Short:         "Yatube blogging platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		ServeCmd(),
		commands.MigrateCmd(),
		SeedCmd(),
		AddUserCmd(),
	)
	return root
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
