package services

import (
	"context"
	"errors"
	"fmt"

	"infinite-experiment/consortium/internal/config"
	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/logging"
)

// Bootstrap brings a fresh ledger to its deployment state: the owner is set,
// the seed airline registered and, unless disabled, the application identity
// put on the delegate allow-list. On a ledger that already exists it only
// re-applies the allow-list entry, which is idempotent.
func Bootstrap(ctx context.Context, c *governance.Consortium, cfg config.Governance) error {
	owner, err := governance.ParseAddress(cfg.OwnerAddress)
	if err != nil {
		return fmt.Errorf("OWNER_ADDRESS: %w", err)
	}
	seed, err := governance.ParseAddress(cfg.SeedAirline)
	if err != nil {
		return fmt.Errorf("SEED_AIRLINE: %w", err)
	}
	app, err := governance.ParseAddress(cfg.AppAddress)
	if err != nil {
		return fmt.Errorf("APP_ADDRESS: %w", err)
	}

	err = c.Initialize(ctx, owner, seed)
	switch {
	case err == nil:
	case errors.Is(err, governance.ErrAlreadyInitialized):
		logging.Info("Consortium ledger already initialized")
	default:
		return fmt.Errorf("failed to initialize consortium: %w", err)
	}

	if !cfg.AuthorizeApp {
		return nil
	}

	err = c.AuthorizeCaller(ctx, owner, app)
	switch {
	case err == nil:
		logging.Info("Application identity authorized", "app", app.String())
	case errors.Is(err, governance.ErrNotOperational):
		// A paused consortium keeps its allow-list as it was.
		logging.Warn("Consortium paused, skipping application authorization", "app", app.String())
	case errors.Is(err, governance.ErrUnauthorized):
		// The ledger was created with a different owner.
		return fmt.Errorf("OWNER_ADDRESS does not own the existing ledger: %w", err)
	default:
		return fmt.Errorf("failed to authorize application: %w", err)
	}
	return nil
}
