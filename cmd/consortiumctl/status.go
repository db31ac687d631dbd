package main

import (
	"encoding/json"

	"infinite-experiment/consortium/internal/db"
	"infinite-experiment/consortium/internal/db/repositories"
	"infinite-experiment/consortium/internal/governance"

	"github.com/spf13/cobra"
)

type statusReport struct {
	Operational        bool               `json:"operational"`
	RegisteredAirlines int                `json:"registered_airlines"`
	PendingCandidacies int                `json:"pending_candidacies"`
	AppAuthorized      bool               `json:"app_authorized"`
	RecentEvents       []governance.Event `json:"recent_events"`
}

func statusCommand() *cobra.Command {
	var events int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the governance state of the ledger as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			orm, err := db.InitORM(cfg.Database)
			if err != nil {
				return err
			}

			c := governance.NewConsortium(
				repositories.NewLedgerRepositoryGORM(orm),
				governance.Settings{MinFunding: cfg.Governance.MinFunding},
				nil,
			)
			app, err := governance.ParseAddress(cfg.Governance.AppAddress)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var report statusReport
			if report.Operational, err = c.IsOperational(ctx); err != nil {
				return err
			}
			if report.RegisteredAirlines, err = c.RegisteredAirlineCount(ctx); err != nil {
				return err
			}
			if report.PendingCandidacies, err = c.PendingCandidacies(ctx); err != nil {
				return err
			}
			if report.AppAuthorized, err = c.IsAuthorizedCaller(ctx, app); err != nil {
				return err
			}
			if report.RecentEvents, err = c.ListEvents(ctx, events); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().IntVar(&events, "events", 10, "number of recent events to include")
	return cmd
}
