package main

import (
	"fmt"

	"infinite-experiment/consortium/internal/db"
	"infinite-experiment/consortium/internal/db/repositories"
	"infinite-experiment/consortium/internal/governance"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func apiKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys bound to caller addresses",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "issue <address>",
		Short: "Issue a new API key for an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := governance.ParseAddress(args[0])
			if err != nil {
				return err
			}
			repo, err := openKeys()
			if err != nil {
				return err
			}

			key := uuid.NewString()
			if err := repo.Insert(cmd.Context(), key, addr.String()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New API Key for %s: %s\n", addr, key)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <key>",
		Short: "Deactivate an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openKeys()
			if err != nil {
				return err
			}
			if err := repo.Revoke(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Revoked", args[0])
			return nil
		},
	})

	return cmd
}

func openKeys() (*repositories.KeysRepo, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	orm, err := db.InitORM(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlxDB, err := db.InitSqlx(cfg.Database, orm)
	if err != nil {
		return nil, err
	}
	return repositories.NewApiKeysRepo(sqlxDB), nil
}
