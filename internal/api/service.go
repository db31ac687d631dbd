package api

import (
	"context"

	"infinite-experiment/consortium/internal/governance"

	"github.com/shopspring/decimal"
)

// GovernanceService is what the HTTP handlers need from the application
// service. *services.AppService implements it.
type GovernanceService interface {
	IsOperational(ctx context.Context) (bool, error)
	SetOperatingStatus(ctx context.Context, caller governance.Address, operational bool) error

	AuthorizeCaller(ctx context.Context, caller, addr governance.Address) error
	DeauthorizeCaller(ctx context.Context, caller, addr governance.Address) error
	IsAuthorizedCaller(ctx context.Context, addr governance.Address) (bool, error)

	Fund(ctx context.Context, from governance.Address, amount decimal.Decimal) (*governance.Airline, error)
	IsFunded(ctx context.Context, addr governance.Address) (bool, error)

	RegisterAirline(ctx context.Context, caller, candidate governance.Address) (*governance.AdmissionResult, error)
	GetAirline(ctx context.Context, addr governance.Address) (*governance.Airline, error)
	RegisteredAirlineCount(ctx context.Context) (int, error)
	GetCandidacy(ctx context.Context, candidate governance.Address) (*governance.Candidacy, error)
	ListEvents(ctx context.Context, limit int) ([]governance.Event, error)
}
