package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/yatube/internal/auth"
	"github.com/beesaferoot/yatube/internal/config"
	"github.com/beesaferoot/yatube/internal/database"
	"github.com/beesaferoot/yatube/internal/forms"
	"github.com/beesaferoot/yatube/internal/seed"
	"github.com/beesaferoot/yatube/internal/store"
)

func openStore() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return store.New(db), nil
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file.yaml]",
		Short: "Load groups and users from a YAML fixture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			s, err := openStore()
			if err != nil {
				return err
			}

			sum, err := seed.Apply(cmd.Context(), s, fixtures)
			if err != nil {
				return fmt.Errorf("failed to apply fixtures: %v", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Groups saved: %d, users created: %d, users skipped: %d\n",
				sum.Groups, sum.UsersCreated, sum.UsersSkipped)
			return nil
		},
	}
}

func AddUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adduser [username] [password]",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := forms.ValidateSignup(forms.SignupInput{Username: args[0], Password: args[1], Password2: args[1]})
			if !res.Valid() {
				for field, msgs := range res.Errors {
					for _, msg := range msgs {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
					}
				}
				return fmt.Errorf("invalid user %q", args[0])
			}

			s, err := openStore()
			if err != nil {
				return err
			}

			user, err := auth.NewService(s).Register(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
}
