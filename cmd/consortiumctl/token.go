package main

import (
	"errors"
	"fmt"
	"time"

	"infinite-experiment/consortium/internal/auth"
	"infinite-experiment/consortium/internal/governance"

	"github.com/spf13/cobra"
)

func tokenCommand() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <address>",
		Short: "Sign a bearer token for an address with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := governance.ParseAddress(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			token, err := auth.IssueToken([]byte(cfg.Auth.JWTSecret), addr, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
