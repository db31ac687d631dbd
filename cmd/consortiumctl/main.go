package main

import (
	"fmt"
	"os"

	"infinite-experiment/consortium/internal/config"
	"infinite-experiment/consortium/internal/logging"

	"github.com/spf13/cobra"
)

const programName = "consortiumctl"

var globalFlags = struct {
	debug bool
}{}

func main() {
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Operator tooling for the airline consortium service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env := "production"
			if globalFlags.debug {
				env = "development"
			}
			return logging.Init(env)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")

	rootCmd.AddCommand(
		apiKeyCommand(),
		tokenCommand(),
		statusCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the same environment the server does.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", programName, err)
	}
	return cfg, nil
}
